package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a compact record of one calibration, persisted so a warm
// start can report when and against how much history weights were last
// derived.
type Snapshot struct {
	Weights      map[string]float64 `msgpack:"weights"`
	HistoryCount int                `msgpack:"history_count"`
	SumLow       int                `msgpack:"sum_low"`
	SumHigh      int                `msgpack:"sum_high"`
	CalibratedAt time.Time          `msgpack:"calibrated_at"`
}

// Snapshot captures the analyzer's current calibration state.
func (a *Analyzer) Snapshot() Snapshot {
	return Snapshot{
		Weights:      a.Weights(),
		HistoryCount: a.HistoryCount(),
		SumLow:       a.sumLow,
		SumHigh:      a.sumHigh,
		CalibratedAt: time.Now().UTC(),
	}
}

// WriteSnapshot persists a calibration snapshot as msgpack.
func WriteSnapshot(path string, snap Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot loads a previously written calibration snapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return snap, nil
}
