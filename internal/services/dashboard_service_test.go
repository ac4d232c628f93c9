package services

import (
	"context"
	"testing"
	"time"

	"navexa/internal/core"
	"navexa/internal/store"
)

func seedFleet(t *testing.T, st store.Store, now time.Time) (core.Vehicle, core.Trip) {
	t.Helper()
	ctx := context.Background()

	vehicle, err := st.UpsertVehicle(ctx, core.Vehicle{
		RegistrationNumber: "KA-01-AB-1234",
		Model:              "Toyota Innova Crysta",
	})
	if err != nil {
		t.Fatalf("UpsertVehicle: %v", err)
	}

	trip := core.Settle(core.Trip{
		Date:          core.DateOf(now),
		VehicleID:     vehicle.ID,
		CustomerName:  "Ravi",
		Income:        200000,
		DriverPayment: core.DriverPayment{TotalAmount: 50000, Advance: 20000},
	})
	trip, err = st.UpsertTrip(ctx, trip)
	if err != nil {
		t.Fatalf("UpsertTrip: %v", err)
	}
	return vehicle, trip
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	vehicle, _ := seedFleet(t, st, now)

	svc := NewDashboardService(st, testLogger())
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TodayTrips != 1 {
		t.Errorf("TodayTrips = %d, want 1", stats.TodayTrips)
	}
	if stats.MonthlyIncome != 200000 {
		t.Errorf("MonthlyIncome = %d, want 200000", stats.MonthlyIncome)
	}
	if stats.MonthlyProfit != 150000 {
		t.Errorf("MonthlyProfit = %d, want 150000", stats.MonthlyProfit)
	}
	if stats.PendingPayments != 30000 {
		t.Errorf("PendingPayments = %d, want 30000", stats.PendingPayments)
	}
	if want := vehicle.Label(); stats.BestVehicle != want {
		t.Errorf("BestVehicle = %q, want %q", stats.BestVehicle, want)
	}
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	svc := NewDashboardService(store.NewMemoryStore(), testLogger())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.BestVehicle != core.UnknownVehicleLabel {
		t.Errorf("BestVehicle = %q, want %q", stats.BestVehicle, core.UnknownVehicleLabel)
	}
	if stats.TodayTrips != 0 || stats.MonthlyIncome != 0 {
		t.Errorf("empty store stats = %+v, want zeros", stats)
	}
}

func TestDashboardStatsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	vehicle, _ := seedFleet(t, st, now)

	svc := NewDashboardService(st, testLogger())
	svc.now = func() time.Time { return now }

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// A write behind the cache's back is not observed...
	extra := core.Settle(core.Trip{
		Date:         core.DateOf(now),
		VehicleID:    vehicle.ID,
		CustomerName: "Meena",
		Income:       100000,
	})
	if _, err := st.UpsertTrip(ctx, extra); err != nil {
		t.Fatalf("UpsertTrip: %v", err)
	}

	cached, _ := svc.Stats(ctx)
	if cached != first {
		t.Errorf("cached stats = %+v, want %+v", cached, first)
	}

	// ...until Invalidate drops the cached aggregate
	svc.Invalidate()
	fresh, _ := svc.Stats(ctx)
	if fresh.TodayTrips != 2 {
		t.Errorf("TodayTrips after invalidate = %d, want 2", fresh.TodayTrips)
	}
	if fresh.MonthlyIncome != 300000 {
		t.Errorf("MonthlyIncome after invalidate = %d, want 300000", fresh.MonthlyIncome)
	}
}

func TestDashboardSeries(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC) // a Monday
	seedFleet(t, st, now)

	svc := NewDashboardService(st, testLogger())
	svc.now = func() time.Time { return now }

	series, err := svc.Series(ctx)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(series) != core.TrailingWindowDays {
		t.Fatalf("len(series) = %d, want %d", len(series), core.TrailingWindowDays)
	}

	last := series[len(series)-1]
	if last.Label != "Mon" {
		t.Errorf("last label = %q, want Mon", last.Label)
	}
	if last.Income != 200000 {
		t.Errorf("last income = %d, want 200000", last.Income)
	}
	for i, point := range series[:len(series)-1] {
		if point.Income != 0 || point.Profit != 0 {
			t.Errorf("series[%d] = %+v, want zero sums", i, point)
		}
	}
}

func TestDashboardCleaners(t *testing.T) {
	svc := NewDashboardService(store.NewMemoryStore(), testLogger())
	if n := len(svc.Cleaners()); n != 2 {
		t.Errorf("len(Cleaners()) = %d, want 2", n)
	}
}
