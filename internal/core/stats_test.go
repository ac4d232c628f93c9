package core

import (
	"testing"
	"time"
)

// settled builds a minimal settled trip for aggregation tests.
func settled(date Date, vehicleID string, income Cents, exp Expenses, dp DriverPayment) Trip {
	return Settle(Trip{
		Date:          date,
		VehicleID:     vehicleID,
		Income:        income,
		Expenses:      exp,
		DriverPayment: dp,
	})
}

func TestComputeStatsEmpty(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

	got := ComputeStats(nil, nil, now)

	want := DashboardStats{BestVehicle: UnknownVehicleLabel}
	if got != want {
		t.Errorf("ComputeStats(empty) = %+v, want %+v", got, want)
	}
}

func TestComputeStatsMonthlyBucket(t *testing.T) {
	// Reference instant: May 31st. A trip on June 1st is one day later but
	// must be excluded from the monthly sums.
	now := time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC)

	trips := []Trip{
		settled(NewDate(2024, 5, 31), "v1", 200000, Expenses{FuelCost: 50000}, DriverPayment{}),
		settled(NewDate(2024, 6, 1), "v1", 999900, Expenses{}, DriverPayment{}),
		settled(NewDate(2024, 5, 2), "v1", 100000, Expenses{Toll: 10000}, DriverPayment{TotalAmount: 20000, Advance: 20000}),
		// Previous year, same month number: excluded
		settled(NewDate(2023, 5, 15), "v1", 500000, Expenses{}, DriverPayment{}),
	}

	got := ComputeStats(trips, nil, now)

	if got.MonthlyIncome != 300000 {
		t.Errorf("MonthlyIncome = %d, want 300000", got.MonthlyIncome)
	}
	if got.MonthlyExpenses != 80000 {
		t.Errorf("MonthlyExpenses = %d, want 80000", got.MonthlyExpenses)
	}
	if got.MonthlyProfit != 220000 {
		t.Errorf("MonthlyProfit = %d, want 220000", got.MonthlyProfit)
	}
	if got.TodayTrips != 1 {
		t.Errorf("TodayTrips = %d, want 1", got.TodayTrips)
	}
}

func TestComputeStatsPendingIsGlobal(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	trips := []Trip{
		// Months outside the current one still contribute pending debt
		settled(NewDate(2024, 1, 10), "v1", 100000, Expenses{}, DriverPayment{TotalAmount: 50000, Advance: 20000}),
		settled(NewDate(2024, 5, 10), "v1", 100000, Expenses{}, DriverPayment{TotalAmount: 40000, Advance: 10000}),
		// Paid trips contribute nothing
		settled(NewDate(2024, 5, 11), "v1", 100000, Expenses{}, DriverPayment{TotalAmount: 30000, Advance: 30000}),
		// Over-advance is Paid with negative balance; excluded from the sum
		settled(NewDate(2024, 5, 12), "v1", 100000, Expenses{}, DriverPayment{TotalAmount: 10000, Advance: 25000}),
	}

	got := ComputeStats(trips, nil, now)

	if got.PendingPayments != 60000 {
		t.Errorf("PendingPayments = %d, want 60000", got.PendingPayments)
	}
}

func TestComputeStatsBestVehicle(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	vehicles := []Vehicle{
		{ID: "va", RegistrationNumber: "KA-01-AB-1234", Model: "Toyota Innova Crysta"},
		{ID: "vb", RegistrationNumber: "KA-05-XY-9876", Model: "Swift Dzire"},
	}

	t.Run("highest summed profit wins", func(t *testing.T) {
		// Vehicle A: 100 + (-50) = 50; vehicle B: 40
		trips := []Trip{
			settled(NewDate(2024, 5, 1), "va", 10000, Expenses{}, DriverPayment{}),
			settled(NewDate(2024, 5, 2), "va", 5000, Expenses{FuelCost: 10000}, DriverPayment{}),
			settled(NewDate(2024, 5, 3), "vb", 4000, Expenses{}, DriverPayment{}),
		}

		got := ComputeStats(trips, vehicles, now)

		want := "Toyota Innova Crysta (KA-01-AB-1234)"
		if got.BestVehicle != want {
			t.Errorf("BestVehicle = %q, want %q", got.BestVehicle, want)
		}
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		trips := []Trip{
			settled(NewDate(2024, 5, 1), "vb", 4000, Expenses{}, DriverPayment{}),
			settled(NewDate(2024, 5, 2), "va", 4000, Expenses{}, DriverPayment{}),
		}

		got := ComputeStats(trips, vehicles, now)

		want := "Swift Dzire (KA-05-XY-9876)"
		if got.BestVehicle != want {
			t.Errorf("BestVehicle = %q, want %q", got.BestVehicle, want)
		}
	})

	t.Run("dangling winner resolves to fallback", func(t *testing.T) {
		trips := []Trip{
			settled(NewDate(2024, 5, 1), "deleted-vehicle", 10000, Expenses{}, DriverPayment{}),
		}

		got := ComputeStats(trips, vehicles, now)

		if got.BestVehicle != UnknownVehicleLabel {
			t.Errorf("BestVehicle = %q, want %q", got.BestVehicle, UnknownVehicleLabel)
		}
	})
}

func TestTrailingSeries(t *testing.T) {
	// A Monday, so the window runs Tue..Mon
	now := time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)

	trips := []Trip{
		settled(NewDate(2024, 5, 20), "v1", 350000, Expenses{FuelCost: 50000}, DriverPayment{}),
		settled(NewDate(2024, 5, 20), "v1", 100000, Expenses{}, DriverPayment{}),
		settled(NewDate(2024, 5, 14), "v1", 80000, Expenses{}, DriverPayment{}),
		// Outside the window
		settled(NewDate(2024, 5, 13), "v1", 999900, Expenses{}, DriverPayment{}),
	}

	got := TrailingSeries(trips, now, TrailingWindowDays)

	if len(got) != 7 {
		t.Fatalf("len(series) = %d, want 7", len(got))
	}

	// Oldest first: first point is Tue May 14th, last is today
	if got[0].Label != "Tue" {
		t.Errorf("series[0].Label = %q, want Tue", got[0].Label)
	}
	if got[0].Income != 80000 {
		t.Errorf("series[0].Income = %d, want 80000", got[0].Income)
	}
	if got[6].Label != "Mon" {
		t.Errorf("series[6].Label = %q, want Mon", got[6].Label)
	}
	if got[6].Income != 450000 {
		t.Errorf("series[6].Income = %d, want 450000", got[6].Income)
	}
	if got[6].Profit != 400000 {
		t.Errorf("series[6].Profit = %d, want 400000", got[6].Profit)
	}

	// Empty days are present with zero sums
	for i := 1; i < 6; i++ {
		if got[i].Income != 0 || got[i].Profit != 0 {
			t.Errorf("series[%d] = %+v, want zero sums", i, got[i])
		}
	}
}

func TestTrailingSeriesNoTrips(t *testing.T) {
	now := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	got := TrailingSeries(nil, now, TrailingWindowDays)

	if len(got) != 7 {
		t.Fatalf("len(series) = %d, want 7", len(got))
	}
	for i, p := range got {
		if p.Income != 0 || p.Profit != 0 {
			t.Errorf("series[%d] = %+v, want zeros", i, p)
		}
		if p.Label == "" {
			t.Errorf("series[%d] missing weekday label", i)
		}
	}
}

func TestTrailingSeriesDefaultsWindow(t *testing.T) {
	now := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	if got := TrailingSeries(nil, now, 0); len(got) != TrailingWindowDays {
		t.Errorf("len(series) = %d, want %d", len(got), TrailingWindowDays)
	}
}
