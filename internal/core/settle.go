package core

// Settle derives all computed trip fields from the raw inputs and returns
// the settled trip. It is pure and total: it never fails for numeric
// inputs and performs no validation (see Trip.Validate for the caller's
// preconditions).
//
// The four derivations are independent; none feeds another:
//
//   - netProfit = income - (fuelCost + toll + parking + other + driver total)
//   - km.total = end - start, clamped at zero (odometer entry tolerance)
//   - remaining = driver total - advance, NOT clamped
//   - status = Paid iff remaining <= 0, else Pending
//
// The clamping is deliberately asymmetric: a negative net profit is a real
// loss-making trip and a negative remaining balance is a real over-advance
// (still Paid), so neither is clamped, while a backwards odometer pair is
// always an entry error and collapses to zero.
func Settle(t Trip) Trip {
	t.NetProfit = t.Income - t.TotalExpenses()

	total := t.Km.End - t.Km.Start
	if total < 0 {
		total = 0
	}
	t.Km.Total = total

	t.DriverPayment.Remaining = t.DriverPayment.TotalAmount - t.DriverPayment.Advance
	if t.DriverPayment.Remaining <= 0 {
		t.DriverPayment.Status = PaymentPaid
	} else {
		t.DriverPayment.Status = PaymentPending
	}

	return t
}
