package core

import "time"

const (
	// MaintenanceOK means the date is either unset or comfortably ahead.
	MaintenanceOK MaintenanceState = "ok"
	// MaintenanceDueSoon means the date falls within the warning window.
	MaintenanceDueSoon MaintenanceState = "due_soon"
	// MaintenanceExpired means the date has passed.
	MaintenanceExpired MaintenanceState = "expired"
)

// DueSoonWindowDays is how far ahead a maintenance date counts as
// approaching.
const DueSoonWindowDays = 15

// MaintenanceState classifies a single maintenance date relative to now.
type MaintenanceState string

// MaintenanceItem pairs a named maintenance date with its state.
type MaintenanceItem struct {
	Name  string           `json:"name"`
	Date  Date             `json:"date"`
	State MaintenanceState `json:"state"`
}

// MaintenanceStatus classifies one maintenance date. Unset dates are OK:
// most vehicles track only a subset of the dates.
func MaintenanceStatus(d Date, now time.Time) MaintenanceState {
	if d.IsEmpty() {
		return MaintenanceOK
	}
	today := DateOf(now)
	if d.Time.Before(today.Time) {
		return MaintenanceExpired
	}
	days := int(d.Time.Sub(today.Time).Hours() / 24)
	if days <= DueSoonWindowDays {
		return MaintenanceDueSoon
	}
	return MaintenanceOK
}

// MaintenanceSummary reports the state of every maintenance date a vehicle
// tracks, skipping unset ones.
func MaintenanceSummary(v Vehicle, now time.Time) []MaintenanceItem {
	dates := []struct {
		name string
		date Date
	}{
		{"lastServiceDate", v.LastServiceDate},
		{"nextServiceDue", v.NextServiceDue},
		{"oilChangeDate", v.OilChangeDate},
		{"tyreChangeDate", v.TyreChangeDate},
		{"brakeServiceDate", v.BrakeServiceDate},
		{"batteryChangeDate", v.BatteryChangeDate},
		{"insuranceExpiry", v.InsuranceExpiry},
		{"pollutionExpiry", v.PollutionExpiry},
	}

	var items []MaintenanceItem
	for _, d := range dates {
		if d.date.IsEmpty() {
			continue
		}
		items = append(items, MaintenanceItem{
			Name:  d.name,
			Date:  d.date,
			State: MaintenanceStatus(d.date, now),
		})
	}
	return items
}
