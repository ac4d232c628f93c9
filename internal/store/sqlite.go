package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"navexa/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists trips and vehicles in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const tripColumns = `id, trip_date, vehicle_id, driver_name, driver_phone,
	customer_name, customer_phone, pickup_location, drop_location,
	start_time, end_time, income_cents, fuel_cost_cents, fuel_quantity,
	toll_cents, parking_cents, other_cents, driver_total_cents,
	driver_advance_cents, driver_remaining_cents, driver_status,
	driver_mode, km_start, km_end, km_total, net_profit_cents, notes`

func (s *SQLiteStore) ListTrips(ctx context.Context) ([]core.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY trip_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := []core.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

func (s *SQLiteStore) GetTrip(ctx context.Context, id string) (core.Trip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Trip{}, ErrNotFound
	}
	if err != nil {
		return core.Trip{}, fmt.Errorf("get trip %s: %w", id, err)
	}
	return t, nil
}

func (s *SQLiteStore) UpsertTrip(ctx context.Context, t core.Trip) (core.Trip, error) {
	if t.ID == "" {
		t.ID = NewID()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trips (`+tripColumns+`, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			trip_date = excluded.trip_date,
			vehicle_id = excluded.vehicle_id,
			driver_name = excluded.driver_name,
			driver_phone = excluded.driver_phone,
			customer_name = excluded.customer_name,
			customer_phone = excluded.customer_phone,
			pickup_location = excluded.pickup_location,
			drop_location = excluded.drop_location,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			income_cents = excluded.income_cents,
			fuel_cost_cents = excluded.fuel_cost_cents,
			fuel_quantity = excluded.fuel_quantity,
			toll_cents = excluded.toll_cents,
			parking_cents = excluded.parking_cents,
			other_cents = excluded.other_cents,
			driver_total_cents = excluded.driver_total_cents,
			driver_advance_cents = excluded.driver_advance_cents,
			driver_remaining_cents = excluded.driver_remaining_cents,
			driver_status = excluded.driver_status,
			driver_mode = excluded.driver_mode,
			km_start = excluded.km_start,
			km_end = excluded.km_end,
			km_total = excluded.km_total,
			net_profit_cents = excluded.net_profit_cents,
			notes = excluded.notes,
			synced = 0`,
		t.ID, t.Date.String(), t.VehicleID, t.DriverName, t.DriverPhone,
		t.CustomerName, t.CustomerPhone, t.PickupLocation, t.DropLocation,
		t.StartTime, t.EndTime, int64(t.Income), int64(t.Expenses.FuelCost),
		t.Expenses.FuelQuantity, int64(t.Expenses.Toll), int64(t.Expenses.Parking),
		int64(t.Expenses.Other), int64(t.DriverPayment.TotalAmount),
		int64(t.DriverPayment.Advance), int64(t.DriverPayment.Remaining),
		string(t.DriverPayment.Status), string(t.DriverPayment.Mode),
		t.Km.Start, t.Km.End, t.Km.Total, int64(t.NetProfit), t.Notes)
	if err != nil {
		return core.Trip{}, fmt.Errorf("upsert trip %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *SQLiteStore) DeleteTrip(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListUnsyncedTrips(ctx context.Context, limit int) ([]core.Trip, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE synced = 0
		 ORDER BY trip_date ASC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced trips: %w", err)
	}
	defer rows.Close()

	var trips []core.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

func (s *SQLiteStore) MarkTripSynced(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE trips SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark trip synced %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const vehicleColumns = `id, registration_number, model, nickname,
	last_service_date, next_service_due, oil_change_date, tyre_change_date,
	brake_service_date, battery_change_date, insurance_expiry, pollution_expiry`

func (s *SQLiteStore) ListVehicles(ctx context.Context) ([]core.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []core.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *SQLiteStore) GetVehicle(ctx context.Context, id string) (core.Vehicle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Vehicle{}, ErrNotFound
	}
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	return v, nil
}

func (s *SQLiteStore) UpsertVehicle(ctx context.Context, v core.Vehicle) (core.Vehicle, error) {
	if v.ID == "" {
		v.ID = NewID()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			registration_number = excluded.registration_number,
			model = excluded.model,
			nickname = excluded.nickname,
			last_service_date = excluded.last_service_date,
			next_service_due = excluded.next_service_due,
			oil_change_date = excluded.oil_change_date,
			tyre_change_date = excluded.tyre_change_date,
			brake_service_date = excluded.brake_service_date,
			battery_change_date = excluded.battery_change_date,
			insurance_expiry = excluded.insurance_expiry,
			pollution_expiry = excluded.pollution_expiry`,
		v.ID, v.RegistrationNumber, v.Model, v.Nickname,
		dateArg(v.LastServiceDate), dateArg(v.NextServiceDue),
		dateArg(v.OilChangeDate), dateArg(v.TyreChangeDate),
		dateArg(v.BrakeServiceDate), dateArg(v.BatteryChangeDate),
		dateArg(v.InsuranceExpiry), dateArg(v.PollutionExpiry))
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("upsert vehicle %s: %w", v.ID, err)
	}
	return v, nil
}

func (s *SQLiteStore) DeleteVehicle(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (core.Trip, error) {
	var (
		t       core.Trip
		date    string
		income  int64
		fuel    int64
		toll    int64
		parking int64
		other   int64
		total   int64
		advance int64
		remain  int64
		status  string
		mode    string
		profit  int64
	)
	err := row.Scan(
		&t.ID, &date, &t.VehicleID, &t.DriverName, &t.DriverPhone,
		&t.CustomerName, &t.CustomerPhone, &t.PickupLocation, &t.DropLocation,
		&t.StartTime, &t.EndTime, &income, &fuel, &t.Expenses.FuelQuantity,
		&toll, &parking, &other, &total, &advance, &remain, &status, &mode,
		&t.Km.Start, &t.Km.End, &t.Km.Total, &profit, &t.Notes)
	if err != nil {
		return core.Trip{}, err
	}

	t.Date, err = core.ParseDate(date)
	if err != nil {
		return core.Trip{}, err
	}
	t.Income = core.Cents(income)
	t.Expenses.FuelCost = core.Cents(fuel)
	t.Expenses.Toll = core.Cents(toll)
	t.Expenses.Parking = core.Cents(parking)
	t.Expenses.Other = core.Cents(other)
	t.DriverPayment.TotalAmount = core.Cents(total)
	t.DriverPayment.Advance = core.Cents(advance)
	t.DriverPayment.Remaining = core.Cents(remain)
	t.DriverPayment.Status = core.PaymentStatus(status)
	t.DriverPayment.Mode = core.PaymentMode(mode)
	t.NetProfit = core.Cents(profit)
	return t, nil
}

func scanVehicle(row scanner) (core.Vehicle, error) {
	var (
		v     core.Vehicle
		dates [8]sql.NullString
	)
	err := row.Scan(
		&v.ID, &v.RegistrationNumber, &v.Model, &v.Nickname,
		&dates[0], &dates[1], &dates[2], &dates[3],
		&dates[4], &dates[5], &dates[6], &dates[7])
	if err != nil {
		return core.Vehicle{}, err
	}

	fields := []*core.Date{
		&v.LastServiceDate, &v.NextServiceDue, &v.OilChangeDate,
		&v.TyreChangeDate, &v.BrakeServiceDate, &v.BatteryChangeDate,
		&v.InsuranceExpiry, &v.PollutionExpiry,
	}
	for i, ns := range dates {
		if !ns.Valid || ns.String == "" {
			continue
		}
		d, err := core.ParseDate(ns.String)
		if err != nil {
			return core.Vehicle{}, err
		}
		*fields[i] = d
	}
	return v, nil
}

// dateArg maps an optional date to its column value: NULL when unset.
func dateArg(d core.Date) any {
	if d.IsEmpty() {
		return nil
	}
	return d.String()
}
