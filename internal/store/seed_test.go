package store

import (
	"context"
	"testing"
	"time"

	"navexa/internal/core"
)

func TestSeedEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	if err := Seed(ctx, s, now); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	vehicles, _ := s.ListVehicles(ctx)
	if len(vehicles) != 2 {
		t.Fatalf("len(vehicles) = %d, want 2", len(vehicles))
	}
	trips, _ := s.ListTrips(ctx)
	if len(trips) != 1 {
		t.Fatalf("len(trips) = %d, want 1", len(trips))
	}

	trip := trips[0]
	if !trip.Date.SameDay(core.DateOf(now)) {
		t.Errorf("demo trip date = %v, want today", trip.Date)
	}
	// The demo trip must be stored settled
	if trip.NetProfit != 235000 {
		t.Errorf("NetProfit = %d, want 235000", trip.NetProfit)
	}
	if trip.DriverPayment.Status != core.PaymentPending {
		t.Errorf("Status = %q, want Pending", trip.DriverPayment.Status)
	}
	if trip.VehicleID != vehicles[0].ID {
		t.Errorf("demo trip references %q, want first seeded vehicle %q", trip.VehicleID, vehicles[0].ID)
	}
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	if _, err := s.UpsertVehicle(ctx, core.Vehicle{RegistrationNumber: "X", Model: "Y"}); err != nil {
		t.Fatalf("UpsertVehicle: %v", err)
	}

	if err := Seed(ctx, s, now); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	vehicles, _ := s.ListVehicles(ctx)
	if len(vehicles) != 1 {
		t.Errorf("len(vehicles) = %d, want 1 (seed must not run)", len(vehicles))
	}
	trips, _ := s.ListTrips(ctx)
	if len(trips) != 0 {
		t.Errorf("len(trips) = %d, want 0", len(trips))
	}
}

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	if err := Seed(ctx, s, now); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, s, now); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	vehicles, _ := s.ListVehicles(ctx)
	if len(vehicles) != 2 {
		t.Errorf("len(vehicles) = %d, want 2", len(vehicles))
	}
}
