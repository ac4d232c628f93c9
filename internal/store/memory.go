package store

import (
	"context"
	"sort"
	"sync"

	"navexa/internal/core"
)

// MemoryStore is a mutex-guarded in-memory Store used for tests and the
// dev backend. Single-writer semantics per id: last write wins.
type MemoryStore struct {
	mu       sync.Mutex
	trips    []core.Trip
	vehicles []core.Vehicle
	synced   map[string]bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{synced: make(map[string]bool)}
}

func (s *MemoryStore) ListTrips(_ context.Context) ([]core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Trip(nil), s.trips...)
	// Newest first, matching the SQLite ordering
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Time.After(out[j].Date.Time)
	})
	return out, nil
}

func (s *MemoryStore) GetTrip(_ context.Context, id string) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Trip{}, ErrNotFound
}

func (s *MemoryStore) UpsertTrip(_ context.Context, t core.Trip) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = NewID()
	}
	s.synced[t.ID] = false
	for i, existing := range s.trips {
		if existing.ID == t.ID {
			s.trips[i] = t
			return t, nil
		}
	}
	// New trips go to the front, like the original record list
	s.trips = append([]core.Trip{t}, s.trips...)
	return t, nil
}

func (s *MemoryStore) DeleteTrip(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.trips {
		if t.ID == id {
			s.trips = append(s.trips[:i], s.trips[i+1:]...)
			delete(s.synced, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListUnsyncedTrips(_ context.Context, limit int) ([]core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Trip
	for i := len(s.trips) - 1; i >= 0; i-- { // oldest first
		t := s.trips[i]
		if !s.synced[t.ID] {
			out = append(out, t)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkTripSynced(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.findTrip(id); err != nil {
		return err
	}
	s.synced[id] = true
	return nil
}

func (s *MemoryStore) findTrip(id string) (core.Trip, error) {
	for _, t := range s.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Trip{}, ErrNotFound
}

func (s *MemoryStore) ListVehicles(_ context.Context) ([]core.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Vehicle(nil), s.vehicles...), nil
}

func (s *MemoryStore) GetVehicle(_ context.Context, id string) (core.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return core.Vehicle{}, ErrNotFound
}

func (s *MemoryStore) UpsertVehicle(_ context.Context, v core.Vehicle) (core.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = NewID()
	}
	for i, existing := range s.vehicles {
		if existing.ID == v.ID {
			s.vehicles[i] = v
			return v, nil
		}
	}
	s.vehicles = append(s.vehicles, v)
	return v, nil
}

func (s *MemoryStore) DeleteVehicle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.vehicles {
		if v.ID == id {
			s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Close() error { return nil }
