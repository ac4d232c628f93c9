// Package services holds the application services between the HTTP
// layer and the store: trip settlement, vehicle upkeep and dashboard
// aggregation.
package services

import (
	"context"
	"fmt"

	"navexa/internal/core"
	"navexa/internal/log"
	"navexa/internal/store"
)

// TripPublisher is what the trip service needs from the message broker.
// A nil publisher disables ledger export without touching the save path.
type TripPublisher interface {
	PublishTripSync(ctx context.Context, tripID string) error
	PublishTripDelete(ctx context.Context, tripID string) error
}

// TripService validates, settles and persists trips, and queues them for
// ledger export.
type TripService struct {
	store      store.TripStore
	publisher  TripPublisher
	logger     *log.Logger
	invalidate func()
}

// NewTripService wires a trip service. publisher may be nil; onChange is
// called after every successful mutation (the dashboard hangs its cache
// invalidation there) and may be nil too.
func NewTripService(st store.TripStore, publisher TripPublisher, logger *log.Logger, onChange func()) *TripService {
	if onChange == nil {
		onChange = func() {}
	}
	return &TripService{
		store:      st,
		publisher:  publisher,
		logger:     logger.WithComponent(log.ComponentTrips),
		invalidate: onChange,
	}
}

func (s *TripService) List(ctx context.Context) ([]core.Trip, error) {
	return s.store.ListTrips(ctx)
}

func (s *TripService) Get(ctx context.Context, id string) (core.Trip, error) {
	return s.store.GetTrip(ctx, id)
}

// Save validates the trip, settles its derived fields and stores it.
// The stored record is the settled one; raw inputs are never persisted
// without their derived fields. A broker failure does not fail the save:
// the synced flag stays clear and the worker's catch-up pass picks the
// trip up later.
func (s *TripService) Save(ctx context.Context, t core.Trip) (core.Trip, error) {
	if err := t.Validate(); err != nil {
		return core.Trip{}, err
	}

	settled := core.Settle(t)

	saved, err := s.store.UpsertTrip(ctx, settled)
	if err != nil {
		return core.Trip{}, fmt.Errorf("store trip: %w", err)
	}

	s.logger.InfoContext(ctx, "Trip saved",
		log.FieldTripID, saved.ID,
		log.FieldOperation, log.OpSettle,
		log.FieldIncomeCents, saved.Income,
		log.FieldProfitCents, saved.NetProfit)

	if s.publisher != nil {
		if err := s.publisher.PublishTripSync(ctx, saved.ID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish trip sync",
				log.FieldTripID, saved.ID,
				log.FieldError, err)
		}
	}

	s.invalidate()
	return saved, nil
}

// Delete removes the trip and queues the ledger row removal.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTrip(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Trip deleted",
		log.FieldTripID, id,
		log.FieldOperation, log.OpDelete)

	if s.publisher != nil {
		if err := s.publisher.PublishTripDelete(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish trip delete",
				log.FieldTripID, id,
				log.FieldError, err)
		}
	}

	s.invalidate()
	return nil
}
