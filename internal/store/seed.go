package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"navexa/internal/core"
)

// Seed inserts the demo vehicles and a demo trip, but only when both
// collections are empty. It is invoked explicitly from the entrypoints at
// startup; nothing seeds as an import-time side effect.
func Seed(ctx context.Context, s Store, now time.Time) error {
	trips, err := s.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("check trips: %w", err)
	}
	vehicles, err := s.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("check vehicles: %w", err)
	}
	if len(trips) > 0 || len(vehicles) > 0 {
		slog.InfoContext(ctx, "Store not empty, skipping demo seed",
			"trips", len(trips), "vehicles", len(vehicles))
		return nil
	}

	innova := core.Vehicle{
		RegistrationNumber: "KA-01-AB-1234",
		Model:              "Toyota Innova Crysta",
		Nickname:           "White Beast",
		InsuranceExpiry:    core.NewDate(2024, 12, 31),
		NextServiceDue:     core.NewDate(2024, 6, 15),
	}
	dzire := core.Vehicle{
		RegistrationNumber: "KA-05-XY-9876",
		Model:              "Swift Dzire",
		Nickname:           "City Runner",
		InsuranceExpiry:    core.NewDate(2024, 8, 20),
		NextServiceDue:     core.NewDate(2024, 7, 1),
	}

	innova, err = s.UpsertVehicle(ctx, innova)
	if err != nil {
		return fmt.Errorf("seed vehicle: %w", err)
	}
	if _, err := s.UpsertVehicle(ctx, dzire); err != nil {
		return fmt.Errorf("seed vehicle: %w", err)
	}

	demo := core.Settle(core.Trip{
		Date:           core.DateOf(now),
		VehicleID:      innova.ID,
		DriverName:     "Ramesh",
		DriverPhone:    "9988776655",
		CustomerName:   "John Doe",
		CustomerPhone:  "9876543210",
		PickupLocation: "Airport",
		DropLocation:   "Whitefield",
		StartTime:      "10:00",
		EndTime:        "12:00",
		Income:         350000,
		Expenses:       core.Expenses{FuelCost: 50000, Toll: 10000, Parking: 5000},
		DriverPayment:  core.DriverPayment{TotalAmount: 50000, Advance: 20000, Mode: core.PayCash},
		Km:             core.KmTracking{Start: 10000, End: 10045},
		Notes:          "Smooth trip.",
	})
	if _, err := s.UpsertTrip(ctx, demo); err != nil {
		return fmt.Errorf("seed trip: %w", err)
	}

	slog.InfoContext(ctx, "Seeded demo data", "vehicles", 2, "trips", 1)
	return nil
}
