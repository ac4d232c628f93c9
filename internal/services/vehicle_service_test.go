package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"navexa/internal/core"
	"navexa/internal/store"
)

func validVehicle() core.Vehicle {
	return core.Vehicle{
		RegistrationNumber: "KA-01-AB-1234",
		Model:              "Toyota Innova Crysta",
	}
}

func TestVehicleServiceSave(t *testing.T) {
	ctx := context.Background()
	invalidated := 0
	svc := NewVehicleService(store.NewMemoryStore(), testLogger(), func() { invalidated++ })

	saved, err := svc.Save(ctx, validVehicle())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Error("Save should assign an id")
	}
	if invalidated != 1 {
		t.Errorf("invalidate calls = %d, want 1", invalidated)
	}

	vehicles, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("len(vehicles) = %d, want 1", len(vehicles))
	}
}

func TestVehicleServiceSaveRejectsInvalid(t *testing.T) {
	svc := NewVehicleService(store.NewMemoryStore(), testLogger(), nil)

	v := validVehicle()
	v.RegistrationNumber = ""
	if _, err := svc.Save(context.Background(), v); !errors.Is(err, core.ErrRegistrationRequired) {
		t.Errorf("Save error = %v, want ErrRegistrationRequired", err)
	}

	v = validVehicle()
	v.Model = "  "
	if _, err := svc.Save(context.Background(), v); !errors.Is(err, core.ErrModelRequired) {
		t.Errorf("Save error = %v, want ErrModelRequired", err)
	}
}

func TestVehicleServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewVehicleService(store.NewMemoryStore(), testLogger(), nil)

	saved, _ := svc.Save(ctx, validVehicle())
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestVehicleServiceMaintenance(t *testing.T) {
	ctx := context.Background()
	svc := NewVehicleService(store.NewMemoryStore(), testLogger(), nil)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	v := validVehicle()
	v.InsuranceExpiry = core.NewDate(2026, 3, 1)  // behind now
	v.PollutionExpiry = core.NewDate(2026, 3, 20) // inside the window
	v.NextServiceDue = core.NewDate(2026, 6, 1)   // far ahead
	saved, _ := svc.Save(ctx, v)

	items, err := svc.Maintenance(ctx, saved.ID, now)
	if err != nil {
		t.Fatalf("Maintenance: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	states := map[string]core.MaintenanceState{}
	for _, item := range items {
		states[item.Name] = item.State
	}
	if states["insuranceExpiry"] != core.MaintenanceExpired {
		t.Errorf("insuranceExpiry = %q, want expired", states["insuranceExpiry"])
	}
	if states["pollutionExpiry"] != core.MaintenanceDueSoon {
		t.Errorf("pollutionExpiry = %q, want due_soon", states["pollutionExpiry"])
	}
	if states["nextServiceDue"] != core.MaintenanceOK {
		t.Errorf("nextServiceDue = %q, want ok", states["nextServiceDue"])
	}

	if _, err := svc.Maintenance(ctx, "nope", now); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Maintenance(unknown) = %v, want ErrNotFound", err)
	}
}
