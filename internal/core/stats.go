package core

import "time"

// UnknownVehicleLabel is the dashboard fallback for an empty trip set or a
// best-performing vehicle whose record no longer exists.
const UnknownVehicleLabel = "N/A"

// TrailingWindowDays is the fixed length of the dashboard chart window.
const TrailingWindowDays = 7

type (
	// DashboardStats is the ephemeral summary recomputed on each request;
	// it is never persisted.
	DashboardStats struct {
		TodayTrips      int    `json:"todayTrips"`
		MonthlyIncome   Cents  `json:"monthlyIncome"`
		MonthlyExpenses Cents  `json:"monthlyExpenses"`
		MonthlyProfit   Cents  `json:"monthlyProfit"`
		PendingPayments Cents  `json:"pendingPayments"`
		BestVehicle     string `json:"bestVehicle"`
	}

	// SeriesPoint is one day of the trailing dashboard chart.
	SeriesPoint struct {
		Label  string `json:"label"`
		Income Cents  `json:"income"`
		Profit Cents  `json:"profit"`
	}
)

// ComputeStats rolls the full trip and vehicle snapshots into dashboard
// statistics, relative to the given reference instant. It is pure over its
// three inputs.
//
// Monthly sums cover the calendar month of now only; the bucket resets on
// the 1st. Pending payments are deliberately global: outstanding driver
// debt does not reset monthly. Best vehicle considers all trips ever, with
// ties broken by first encountered in iteration order, so the result is
// deterministic only when the caller supplies trips in a stable order.
func ComputeStats(trips []Trip, vehicles []Vehicle, now time.Time) DashboardStats {
	today := DateOf(now)

	stats := DashboardStats{BestVehicle: UnknownVehicleLabel}

	profitByVehicle := make(map[string]Cents)
	var vehicleOrder []string

	for _, trip := range trips {
		if trip.Date.SameDay(today) {
			stats.TodayTrips++
		}

		if trip.Date.SameMonth(today) {
			stats.MonthlyIncome += trip.Income
			stats.MonthlyExpenses += trip.TotalExpenses()
			// NetProfit is the stored derived field, used as-is
			stats.MonthlyProfit += trip.NetProfit
		}

		if trip.DriverPayment.Status == PaymentPending {
			stats.PendingPayments += trip.DriverPayment.Remaining
		}

		if _, seen := profitByVehicle[trip.VehicleID]; !seen {
			vehicleOrder = append(vehicleOrder, trip.VehicleID)
		}
		profitByVehicle[trip.VehicleID] += trip.NetProfit
	}

	if len(vehicleOrder) == 0 {
		return stats
	}

	bestID := vehicleOrder[0]
	bestProfit := profitByVehicle[bestID]
	for _, id := range vehicleOrder[1:] {
		if profitByVehicle[id] > bestProfit {
			bestID = id
			bestProfit = profitByVehicle[id]
		}
	}

	for _, v := range vehicles {
		if v.ID == bestID {
			stats.BestVehicle = v.Label()
			return stats
		}
	}
	// Dangling winner: the referenced vehicle was deleted
	return stats
}

// TrailingSeries produces the dashboard chart data: one point per calendar
// date for the windowDays dates ending at now inclusive, oldest first.
// Days without trips yield zero sums, never omission, so the series always
// has exactly windowDays points. Pass TrailingWindowDays for the standard
// dashboard window.
func TrailingSeries(trips []Trip, now time.Time, windowDays int) []SeriesPoint {
	if windowDays <= 0 {
		windowDays = TrailingWindowDays
	}
	today := DateOf(now)

	series := make([]SeriesPoint, windowDays)
	for i := range series {
		day := today.AddDays(i - (windowDays - 1))
		point := SeriesPoint{Label: day.WeekdayShort()}
		for _, trip := range trips {
			if trip.Date.SameDay(day) {
				point.Income += trip.Income
				point.Profit += trip.NetProfit
			}
		}
		series[i] = point
	}
	return series
}
