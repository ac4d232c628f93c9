package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"navexa/internal/core"
	"navexa/internal/log"
	"navexa/internal/store"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// fakePublisher records publish calls and can be told to fail.
type fakePublisher struct {
	syncs   []string
	deletes []string
	err     error
}

func (p *fakePublisher) PublishTripSync(_ context.Context, tripID string) error {
	p.syncs = append(p.syncs, tripID)
	return p.err
}

func (p *fakePublisher) PublishTripDelete(_ context.Context, tripID string) error {
	p.deletes = append(p.deletes, tripID)
	return p.err
}

func validTrip() core.Trip {
	return core.Trip{
		Date:         core.DateOf(time.Now()),
		VehicleID:    "veh-1",
		CustomerName: "Ravi",
		Income:       350000,
		Expenses:     core.Expenses{FuelCost: 40000, Toll: 10000, Parking: 5000},
		DriverPayment: core.DriverPayment{
			TotalAmount: 60000,
			Advance:     30000,
			Mode:        core.PayCash,
		},
		Km: core.KmTracking{Start: 12000, End: 12045},
	}
}

func TestTripServiceSaveSettlesAndPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	invalidated := 0
	svc := NewTripService(store.NewMemoryStore(), pub, testLogger(), func() { invalidated++ })

	saved, err := svc.Save(ctx, validTrip())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if saved.ID == "" {
		t.Error("Save should assign an id")
	}
	if saved.NetProfit != 235000 {
		t.Errorf("NetProfit = %d, want 235000", saved.NetProfit)
	}
	if saved.Km.Total != 45 {
		t.Errorf("Km.Total = %d, want 45", saved.Km.Total)
	}
	if saved.DriverPayment.Remaining != 30000 {
		t.Errorf("Remaining = %d, want 30000", saved.DriverPayment.Remaining)
	}
	if saved.DriverPayment.Status != core.PaymentPending {
		t.Errorf("Status = %q, want %q", saved.DriverPayment.Status, core.PaymentPending)
	}

	if len(pub.syncs) != 1 || pub.syncs[0] != saved.ID {
		t.Errorf("published syncs = %v, want [%s]", pub.syncs, saved.ID)
	}
	if invalidated != 1 {
		t.Errorf("invalidate calls = %d, want 1", invalidated)
	}

	// The stored record is the settled one
	stored, err := svc.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.NetProfit != 235000 {
		t.Errorf("stored NetProfit = %d, want 235000", stored.NetProfit)
	}
}

func TestTripServiceSaveRejectsInvalid(t *testing.T) {
	svc := NewTripService(store.NewMemoryStore(), &fakePublisher{}, testLogger(), nil)

	tests := []struct {
		name    string
		mutate  func(*core.Trip)
		wantErr error
	}{
		{"missing vehicle", func(tr *core.Trip) { tr.VehicleID = "" }, core.ErrVehicleRequired},
		{"missing customer", func(tr *core.Trip) { tr.CustomerName = "  " }, core.ErrCustomerRequired},
		{"zero income", func(tr *core.Trip) { tr.Income = 0 }, core.ErrIncomeRequired},
		{"negative expense", func(tr *core.Trip) { tr.Expenses.Toll = -1 }, core.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := validTrip()
			tt.mutate(&trip)
			_, err := svc.Save(context.Background(), trip)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Save error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTripServiceSaveSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewTripService(store.NewMemoryStore(), pub, testLogger(), nil)

	saved, err := svc.Save(ctx, validTrip())
	if err != nil {
		t.Fatalf("Save = %v, want nil when only publish fails", err)
	}
	if _, err := svc.Get(ctx, saved.ID); err != nil {
		t.Errorf("trip should be stored despite publish failure: %v", err)
	}
}

func TestTripServiceSaveWithoutPublisher(t *testing.T) {
	svc := NewTripService(store.NewMemoryStore(), nil, testLogger(), nil)
	if _, err := svc.Save(context.Background(), validTrip()); err != nil {
		t.Fatalf("Save without publisher = %v", err)
	}
}

func TestTripServiceDelete(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTripService(store.NewMemoryStore(), pub, testLogger(), nil)

	saved, _ := svc.Save(ctx, validTrip())
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if len(pub.deletes) != 1 || pub.deletes[0] != saved.ID {
		t.Errorf("published deletes = %v, want [%s]", pub.deletes, saved.ID)
	}
}

func TestTripServiceDeleteUnknown(t *testing.T) {
	svc := NewTripService(store.NewMemoryStore(), &fakePublisher{}, testLogger(), nil)
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete(unknown) = %v, want ErrNotFound", err)
	}
}
