package core

import (
	"errors"
	"strings"
)

// Vehicle is a fleet vehicle with its registration details and optional
// maintenance dates. It carries no derived numeric fields.
type Vehicle struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registrationNumber"`
	Model              string `json:"model"`
	Nickname           string `json:"nickname,omitempty"`

	LastServiceDate   Date `json:"lastServiceDate,omitempty"`
	NextServiceDue    Date `json:"nextServiceDue,omitempty"`
	OilChangeDate     Date `json:"oilChangeDate,omitempty"`
	TyreChangeDate    Date `json:"tyreChangeDate,omitempty"`
	BrakeServiceDate  Date `json:"brakeServiceDate,omitempty"`
	BatteryChangeDate Date `json:"batteryChangeDate,omitempty"`
	InsuranceExpiry   Date `json:"insuranceExpiry,omitempty"`
	PollutionExpiry   Date `json:"pollutionExpiry,omitempty"`
}

var (
	ErrRegistrationRequired = errors.New("registration number is required")
	ErrModelRequired        = errors.New("model is required")
)

func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.RegistrationNumber) == "" {
		return ErrRegistrationRequired
	}
	if strings.TrimSpace(v.Model) == "" {
		return ErrModelRequired
	}
	return nil
}

// Label is the display form used by the dashboard, e.g.
// "Toyota Innova Crysta (KA-01-AB-1234)".
func (v Vehicle) Label() string {
	return v.Model + " (" + v.RegistrationNumber + ")"
}
