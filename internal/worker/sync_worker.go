// Package worker exports trips from the store to the external ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"navexa/internal/amqp"
	"navexa/internal/core"
	"navexa/internal/ledger"
	"navexa/internal/store"
)

// SyncWorker consumes trip sync and delete messages and keeps the
// external ledger in step with the store.
type SyncWorker struct {
	store     store.TripStore
	ledger    ledger.Ledger
	batchSize int
}

func NewSyncWorker(st store.TripStore, lg ledger.Ledger, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     st,
		ledger:    lg,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single trip sync message from AMQP. The
// message only names the trip; the worker exports whatever the store
// holds now, so a burst of edits collapses into one export of the latest
// state.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TripSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "trip_id", msg.TripID)

	trip, err := w.store.GetTrip(ctx, msg.TripID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between publish and consume; the delete message will
		// clean up the ledger row.
		slog.InfoContext(ctx, "Trip gone from store, skipping sync", "trip_id", msg.TripID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get trip from store: %w", err)
	}

	return w.exportTrip(ctx, trip.ID, trip)
}

// HandleDeleteMessage removes the trip's ledger row. The record is
// already gone from the store, so the message is all we get.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TripDeleteMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "trip_id", msg.TripID)

	if err := w.ledger.Remove(ctx, msg.TripID); err != nil {
		return fmt.Errorf("remove trip from ledger: %w", err)
	}

	slog.InfoContext(ctx, "Removed trip from ledger", "trip_id", msg.TripID)
	return nil
}

// ProcessPendingTrips exports any trips that haven't been synced yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingTrips(ctx context.Context) error {
	pending, err := w.store.ListUnsyncedTrips(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced trips: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending trips", "count", len(pending))

	for _, trip := range pending {
		if err := w.exportTrip(ctx, trip.ID, trip); err != nil {
			slog.ErrorContext(ctx, "Failed to sync trip", "trip_id", trip.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupSyncCheck exports pending trips at worker startup. Useful to
// recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	// Larger batch for the startup pass
	pending, err := w.store.ListUnsyncedTrips(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list unsynced trips for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending trips found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending trips on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, trip := range pending {
		if err := w.exportTrip(ctx, trip.ID, trip); err != nil {
			slog.ErrorContext(ctx, "Failed to sync trip during startup",
				"trip_id", trip.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) exportTrip(ctx context.Context, id string, trip core.Trip) error {
	ref, err := w.ledger.Append(ctx, trip)
	if err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.store.MarkTripSynced(ctx, id); err != nil {
		// The export itself worked; log and move on so the trip is not
		// re-exported as a hard failure.
		slog.ErrorContext(ctx, "Failed to mark trip as synced", "trip_id", id, "error", err)
	}

	slog.InfoContext(ctx, "Synced trip to ledger",
		"trip_id", id,
		"ledger_ref", ref,
		"income_cents", trip.Income)
	return nil
}
