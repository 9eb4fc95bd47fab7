package settings

import (
	"path/filepath"
	"testing"

	"trade-pnl-tracker/internal/economics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadMissing(t *testing.T) {
	st := openTestStore(t)

	_, ok, err := st.Load(economics.InstrumentNifty)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Expected no override for a fresh store")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)

	rates := economics.ChargeRates{
		BrokeragePerOrder: 15,
		STTPct:            0.1,
		TxnChargePct:      0.04,
		GSTPct:            18,
		SEBIFeesPct:       0.0001,
		StampDutyPct:      0.002,
	}
	if err := st.Save(economics.InstrumentNifty, rates); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := st.Load(economics.InstrumentNifty)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected override to exist")
	}
	if got != rates {
		t.Errorf("Round trip mismatch: got %+v want %+v", got, rates)
	}
}

func TestSaveOverwrites(t *testing.T) {
	st := openTestStore(t)

	first := economics.DefaultRates(economics.InstrumentCrude)
	if err := st.Save(economics.InstrumentCrude, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := first
	second.BrokeragePerOrder = 40
	if err := st.Save(economics.InstrumentCrude, second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, _, err := st.Load(economics.InstrumentCrude)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.BrokeragePerOrder != 40 {
		t.Errorf("Expected upsert to win, got %f", got.BrokeragePerOrder)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)

	if err := st.Save(economics.InstrumentNifty, economics.DefaultRates(economics.InstrumentNifty)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Delete(economics.InstrumentNifty); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := st.Load(economics.InstrumentNifty)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Expected override to be gone after delete")
	}

	// Deleting again is a no-op, not an error.
	if err := st.Delete(economics.InstrumentNifty); err != nil {
		t.Errorf("Second delete failed: %v", err)
	}
}
