// Package ledger defines the outbound ports for exporting trips to an
// external bookkeeping ledger.
package ledger

import (
	"context"

	"navexa/internal/core"
)

// Ports for outbound adapters.
type (
	// TripAppender exports one trip as a ledger row and returns a
	// reference to where it landed. Appending a trip that is already in
	// the ledger replaces its row, so repeated syncs stay idempotent.
	TripAppender interface {
		Append(ctx context.Context, t core.Trip) (rowRef string, err error)
	}

	// TripRemover deletes a trip's ledger row by trip id. Removing an id
	// the ledger never saw is not an error.
	TripRemover interface {
		Remove(ctx context.Context, tripID string) error
	}

	// Ledger is the full export surface the sync worker wires up.
	Ledger interface {
		TripAppender
		TripRemover
	}
)
