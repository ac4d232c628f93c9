package core

import (
	"errors"
	"strings"
)

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

const (
	PayCash PaymentMode = "Cash"
	PayUPI  PaymentMode = "UPI"
	PayBank PaymentMode = "Bank"
)

type (
	// PaymentStatus is derived from the driver balance, never edited.
	PaymentStatus string

	// PaymentMode is how the driver gets paid.
	PaymentMode string

	// Expenses are the itemized per-trip costs. All amounts are raw
	// inputs; FuelQuantity is informational only and takes no part in
	// settlement.
	Expenses struct {
		FuelCost     Cents   `json:"fuelCost"`
		FuelQuantity float64 `json:"fuelQuantity,omitempty"`
		Toll         Cents   `json:"toll"`
		Parking      Cents   `json:"parking"`
		Other        Cents   `json:"other"`
	}

	// DriverPayment tracks what the driver is owed for a trip.
	// Remaining and Status are derived by Settle.
	DriverPayment struct {
		TotalAmount Cents         `json:"totalAmount"`
		Advance     Cents         `json:"advance"`
		Remaining   Cents         `json:"remaining"`
		Status      PaymentStatus `json:"status"`
		Mode        PaymentMode   `json:"mode"`
	}

	// KmTracking holds the odometer readings. Total is derived by Settle.
	KmTracking struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"`
		Total int64 `json:"total"`
	}

	// Trip is one completed hire event. VehicleID may dangle (vehicle
	// deleted after the trip referenced it); that is not an error and
	// resolves to an "Unknown" label at display time.
	Trip struct {
		ID             string        `json:"id"`
		Date           Date          `json:"date"`
		VehicleID      string        `json:"vehicleId"`
		DriverName     string        `json:"driverName"`
		DriverPhone    string        `json:"driverPhone"`
		CustomerName   string        `json:"customerName"`
		CustomerPhone  string        `json:"customerPhone"`
		PickupLocation string        `json:"pickupLocation"`
		DropLocation   string        `json:"dropLocation"`
		StartTime      string        `json:"startTime"`
		EndTime        string        `json:"endTime"`
		Income         Cents         `json:"income"`
		Expenses       Expenses      `json:"expenses"`
		DriverPayment  DriverPayment `json:"driverPayment"`
		Km             KmTracking    `json:"km"`
		NetProfit      Cents         `json:"netProfit"`
		Notes          string        `json:"notes"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrVehicleRequired  = errors.New("vehicle is required")
	ErrCustomerRequired = errors.New("customer name is required")
	ErrIncomeRequired   = errors.New("income must be greater than zero")
	ErrNegativeAmount   = errors.New("raw amounts must be non-negative")
)

// Validate enforces the caller-side preconditions for saving a trip:
// a vehicle selected, a customer named and a non-zero income. Settlement
// itself is total and never rejects; these checks run before it.
func (t Trip) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.VehicleID) == "" {
		return ErrVehicleRequired
	}
	if strings.TrimSpace(t.CustomerName) == "" {
		return ErrCustomerRequired
	}
	if t.Income <= 0 {
		return ErrIncomeRequired
	}
	for _, v := range []Cents{
		t.Income,
		t.Expenses.FuelCost,
		t.Expenses.Toll,
		t.Expenses.Parking,
		t.Expenses.Other,
		t.DriverPayment.TotalAmount,
		t.DriverPayment.Advance,
	} {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// TotalExpenses is the full cost side of a trip: itemized expenses plus
// the driver's agreed payment.
func (t Trip) TotalExpenses() Cents {
	return t.Expenses.FuelCost + t.Expenses.Toll + t.Expenses.Parking +
		t.Expenses.Other + t.DriverPayment.TotalAmount
}
