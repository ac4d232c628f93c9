// Package memory is an in-memory ledger used for local development and
// tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"navexa/internal/core"
	"navexa/internal/ledger"
)

type Ledger struct {
	mu   sync.Mutex
	rows []core.Trip
}

var _ ledger.Ledger = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{}
}

// Append stores the trip, replacing any row with the same id, and
// returns a synthetic row reference.
func (l *Ledger) Append(_ context.Context, t core.Trip) (string, error) {
	if t.ID == "" {
		return "", errors.New("trip has no id")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, row := range l.rows {
		if row.ID == t.ID {
			l.rows[i] = t
			return fmt.Sprintf("mem:%d", i+1), nil
		}
	}
	l.rows = append(l.rows, t)
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

// Remove drops the trip's row. Unknown ids are a no-op.
func (l *Ledger) Remove(_ context.Context, tripID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, row := range l.rows {
		if row.ID == tripID {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of the stored trips in ledger order.
func (l *Ledger) Rows() []core.Trip {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Trip(nil), l.rows...)
}
