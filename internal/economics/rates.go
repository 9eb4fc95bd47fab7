package economics

import (
	"errors"
	"fmt"
	"sync"
)

type Instrument string

const (
	InstrumentNifty Instrument = "NIFTY"
	InstrumentCrude Instrument = "CRUDE"
)

// ErrInvalidRate is returned when a charge rate is negative.
var ErrInvalidRate = errors.New("charge rates must be non-negative")

// ChargeRates is the per-instrument statutory charge table. All percentage
// fields are expressed as percentages (0.125 means 0.125%), not fractions.
type ChargeRates struct {
	BrokeragePerOrder float64 `json:"brokeragePerOrder" yaml:"brokerage_per_order"`
	STTPct            float64 `json:"sttPct" yaml:"stt_pct"`
	TxnChargePct      float64 `json:"txnChargePct" yaml:"txn_charge_pct"`
	GSTPct            float64 `json:"gstPct" yaml:"gst_pct"`
	SEBIFeesPct       float64 `json:"sebiFeesPct" yaml:"sebi_fees_pct"`
	StampDutyPct      float64 `json:"stampDutyPct" yaml:"stamp_duty_pct"`
}

func (r ChargeRates) validate() error {
	if r.BrokeragePerOrder < 0 {
		return fmt.Errorf("%w: brokerage %.4f", ErrInvalidRate, r.BrokeragePerOrder)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"stt", r.STTPct},
		{"txn", r.TxnChargePct},
		{"gst", r.GSTPct},
		{"sebi", r.SEBIFeesPct},
		{"stamp", r.StampDutyPct},
	} {
		if p.v < 0 {
			return fmt.Errorf("%w: %s %.4f", ErrInvalidRate, p.name, p.v)
		}
	}
	return nil
}

// Discount-broker schedule (Zerodha/AngelOne/Upstox model). STT applies to
// the sell leg only, stamp duty to the buy leg only.
var defaultRates = map[Instrument]ChargeRates{
	InstrumentNifty: {
		BrokeragePerOrder: 20,
		STTPct:            0.125,
		TxnChargePct:      0.05,
		GSTPct:            18,
		SEBIFeesPct:       0.0001,
		StampDutyPct:      0.003,
	},
	InstrumentCrude: {
		BrokeragePerOrder: 20,
		STTPct:            0.05,
		TxnChargePct:      0.05,
		GSTPct:            18,
		SEBIFeesPct:       0.0001,
		StampDutyPct:      0.003,
	},
}

var defaultLotSizes = map[Instrument]int{
	InstrumentNifty: 65,
	InstrumentCrude: 100,
}

// DefaultRates returns the built-in schedule for an instrument. Unknown
// instruments get a zero schedule, which charges nothing.
func DefaultRates(inst Instrument) ChargeRates {
	return defaultRates[inst]
}

// DefaultLotSize returns the contract lot size for an instrument, 0 if unknown.
func DefaultLotSize(inst Instrument) int {
	return defaultLotSizes[inst]
}

// OverrideStore persists user-edited charge rates between runs.
type OverrideStore interface {
	Load(inst Instrument) (ChargeRates, bool, error)
	Save(inst Instrument, rates ChargeRates) error
	Delete(inst Instrument) error
}

// Schedule resolves charge rates per instrument: a user override when one
// exists, the built-in default otherwise. Overrides are held in memory and
// mirrored to the store when one is attached.
type Schedule struct {
	mu        sync.RWMutex
	overrides map[Instrument]ChargeRates
	store     OverrideStore
}

// NewSchedule builds a schedule, loading any persisted overrides for the
// known instruments. store may be nil for a defaults-only schedule.
func NewSchedule(store OverrideStore) (*Schedule, error) {
	s := &Schedule{
		overrides: make(map[Instrument]ChargeRates),
		store:     store,
	}
	if store == nil {
		return s, nil
	}
	for inst := range defaultRates {
		rates, ok, err := store.Load(inst)
		if err != nil {
			return nil, fmt.Errorf("load charge overrides for %s: %w", inst, err)
		}
		if ok {
			s.overrides[inst] = rates
		}
	}
	return s, nil
}

// Rates returns the effective charge rates for an instrument.
func (s *Schedule) Rates(inst Instrument) ChargeRates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.overrides[inst]; ok {
		return r
	}
	return defaultRates[inst]
}

// SetRates replaces the rates for an instrument. A zero SEBI rate in the
// incoming set keeps the current one; the settings form never exposes it.
func (s *Schedule) SetRates(inst Instrument, rates ChargeRates) error {
	if err := rates.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rates.SEBIFeesPct == 0 {
		cur, ok := s.overrides[inst]
		if !ok {
			cur = defaultRates[inst]
		}
		rates.SEBIFeesPct = cur.SEBIFeesPct
	}
	s.overrides[inst] = rates
	if s.store != nil {
		if err := s.store.Save(inst, rates); err != nil {
			return fmt.Errorf("persist charge overrides for %s: %w", inst, err)
		}
	}
	return nil
}

// ResetToDefault discards any override for an instrument.
func (s *Schedule) ResetToDefault(inst Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, inst)
	if s.store != nil {
		if err := s.store.Delete(inst); err != nil {
			return fmt.Errorf("delete charge overrides for %s: %w", inst, err)
		}
	}
	return nil
}
