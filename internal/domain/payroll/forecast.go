package payroll

import (
	"math"
	"sort"
)

// DefaultForecastPeriods is the trailing window used when the caller
// does not override it.
const DefaultForecastPeriods = 3

// Forecast returns the arithmetic mean of net pay over the most recent
// approved pay periods, rounded to 2 decimals. Pending and rejected
// records are ignored. Returns 0 when no approved records exist.
func Forecast(records []Record, periods int) float64 {
	if periods <= 0 {
		periods = DefaultForecastPeriods
	}

	approved := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Status == PayrollStatusApproved {
			approved = append(approved, r)
		}
	}
	if len(approved) == 0 {
		return 0
	}

	sort.Slice(approved, func(i, j int) bool {
		return approved[i].PeriodEnd.After(approved[j].PeriodEnd)
	})

	if len(approved) > periods {
		approved = approved[:periods]
	}

	var sum float64
	for _, r := range approved {
		sum += r.NetPay
	}
	mean := sum / float64(len(approved))

	return math.Round(mean*100) / 100
}
