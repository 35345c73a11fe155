package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func approvedRecord(netPay float64, periodEnd time.Time) Record {
	return Record{
		ID:          uuid.New(),
		WorkerID:    uuid.New(),
		PeriodStart: periodEnd.AddDate(0, 0, -14),
		PeriodEnd:   periodEnd,
		NetPay:      netPay,
		Status:      PayrollStatusApproved,
	}
}

func TestForecast(t *testing.T) {
	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		records []Record
		periods int
		want    float64
	}{
		{
			name: "mean of the three latest approved periods",
			records: []Record{
				approvedRecord(1000, end),
				approvedRecord(1200, end.AddDate(0, 0, -14)),
				approvedRecord(800, end.AddDate(0, 0, -28)),
			},
			periods: 3,
			want:    1000.00,
		},
		{
			name: "older periods beyond the window are ignored",
			records: []Record{
				approvedRecord(500, end.AddDate(0, 0, -42)),
				approvedRecord(1000, end),
				approvedRecord(1200, end.AddDate(0, 0, -14)),
				approvedRecord(800, end.AddDate(0, 0, -28)),
			},
			periods: 3,
			want:    1000.00,
		},
		{
			name: "pending and rejected records are excluded",
			records: []Record{
				approvedRecord(1000, end),
				{WorkerID: uuid.New(), PeriodEnd: end, NetPay: 9000, Status: PayrollStatusPending},
				{WorkerID: uuid.New(), PeriodEnd: end, NetPay: 9000, Status: PayrollStatusRejected},
			},
			periods: 3,
			want:    1000.00,
		},
		{
			name:    "no approved records yields zero",
			records: []Record{{WorkerID: uuid.New(), PeriodEnd: end, NetPay: 500, Status: PayrollStatusPending}},
			periods: 3,
			want:    0,
		},
		{
			name: "result is rounded to two decimals",
			records: []Record{
				approvedRecord(100, end),
				approvedRecord(100, end.AddDate(0, 0, -14)),
				approvedRecord(101, end.AddDate(0, 0, -28)),
			},
			periods: 3,
			want:    100.33,
		},
		{
			name: "non-positive periods falls back to the default window",
			records: []Record{
				approvedRecord(1000, end),
				approvedRecord(1200, end.AddDate(0, 0, -14)),
				approvedRecord(800, end.AddDate(0, 0, -28)),
				approvedRecord(500, end.AddDate(0, 0, -42)),
			},
			periods: 0,
			want:    1000.00,
		},
		{
			name: "fewer records than the window averages what exists",
			records: []Record{
				approvedRecord(900, end),
			},
			periods: 3,
			want:    900.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Forecast(tt.records, tt.periods))
		})
	}
}

func TestForecastOrderIndependent(t *testing.T) {
	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	// Latest two periods regardless of slice order.
	records := []Record{
		approvedRecord(800, end.AddDate(0, 0, -28)),
		approvedRecord(1000, end),
		approvedRecord(1200, end.AddDate(0, 0, -14)),
	}

	assert.Equal(t, 1100.00, Forecast(records, 2))
}
