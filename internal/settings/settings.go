// Package settings persists user-edited charge rates in a local SQLite file,
// the desktop analogue of the calculator's browser storage.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"trade-pnl-tracker/internal/economics"
)

const schema = `
CREATE TABLE IF NOT EXISTS charge_overrides (
	instrument TEXT PRIMARY KEY,
	rates      TEXT NOT NULL
);`

// Store is a SQLite-backed override store. It implements
// economics.OverrideStore.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the settings database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open settings db at %s: %w", path, err)
	}
	// Single connection avoids SQLite locking issues.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping settings db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the persisted rates for an instrument, ok=false when absent.
func (s *Store) Load(inst economics.Instrument) (economics.ChargeRates, bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT rates FROM charge_overrides WHERE instrument = ?`, string(inst),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return economics.ChargeRates{}, false, nil
	}
	if err != nil {
		return economics.ChargeRates{}, false, fmt.Errorf("load overrides for %s: %w", inst, err)
	}

	var rates economics.ChargeRates
	if err := json.Unmarshal([]byte(raw), &rates); err != nil {
		return economics.ChargeRates{}, false, fmt.Errorf("decode overrides for %s: %w", inst, err)
	}
	return rates, true, nil
}

// Save upserts the rates for an instrument.
func (s *Store) Save(inst economics.Instrument, rates economics.ChargeRates) error {
	raw, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("encode overrides for %s: %w", inst, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO charge_overrides (instrument, rates) VALUES (?, ?)
		 ON CONFLICT(instrument) DO UPDATE SET rates = excluded.rates`,
		string(inst), string(raw),
	)
	if err != nil {
		return fmt.Errorf("save overrides for %s: %w", inst, err)
	}
	return nil
}

// Delete removes the override for an instrument, if any.
func (s *Store) Delete(inst economics.Instrument) error {
	if _, err := s.db.Exec(
		`DELETE FROM charge_overrides WHERE instrument = ?`, string(inst),
	); err != nil {
		return fmt.Errorf("delete overrides for %s: %w", inst, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
