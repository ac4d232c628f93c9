package services

import (
	"context"
	"fmt"
	"time"

	"navexa/internal/core"
	"navexa/internal/log"
	"navexa/internal/store"
)

// VehicleService manages the fleet roster and its maintenance view.
type VehicleService struct {
	store      store.VehicleStore
	logger     *log.Logger
	invalidate func()
}

// NewVehicleService wires a vehicle service. onChange may be nil.
func NewVehicleService(st store.VehicleStore, logger *log.Logger, onChange func()) *VehicleService {
	if onChange == nil {
		onChange = func() {}
	}
	return &VehicleService{
		store:      st,
		logger:     logger.WithComponent(log.ComponentVehicles),
		invalidate: onChange,
	}
}

func (s *VehicleService) List(ctx context.Context) ([]core.Vehicle, error) {
	return s.store.ListVehicles(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id string) (core.Vehicle, error) {
	return s.store.GetVehicle(ctx, id)
}

func (s *VehicleService) Save(ctx context.Context, v core.Vehicle) (core.Vehicle, error) {
	if err := v.Validate(); err != nil {
		return core.Vehicle{}, err
	}

	saved, err := s.store.UpsertVehicle(ctx, v)
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("store vehicle: %w", err)
	}

	s.logger.InfoContext(ctx, "Vehicle saved",
		log.FieldVehicleID, saved.ID,
		"registration", saved.RegistrationNumber)

	s.invalidate()
	return saved, nil
}

// Delete removes the vehicle. Trips referencing it stay untouched; their
// vehicle id dangles and resolves to the unknown label at display time.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Vehicle deleted",
		log.FieldVehicleID, id,
		log.FieldOperation, log.OpDelete)

	s.invalidate()
	return nil
}

// Maintenance returns the state of every maintenance date the vehicle
// tracks, relative to now.
func (s *VehicleService) Maintenance(ctx context.Context, id string, now time.Time) ([]core.MaintenanceItem, error) {
	v, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	return core.MaintenanceSummary(v, now), nil
}
