package invoices

import (
	"testing"
	"time"
)

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		due := now.AddDate(0, 0, -d)
		return &due
	}
	hoursAgo := func(h int) *time.Time {
		due := now.Add(-time.Duration(h) * time.Hour)
		return &due
	}

	tests := []struct {
		name string
		due  *time.Time
		want int
	}{
		{"missing due date", nil, 0},
		{"future due date", daysAgo(-5), 0},
		{"due right now", daysAgo(0), 0},
		{"exactly ten days late", daysAgo(10), 10},
		{"exactly one day late", hoursAgo(24), 1},
		{"one hour late rounds up", hoursAgo(1), 1},
		{"ten days and one hour rounds up", hoursAgo(241), 11},
		{"just under one day", hoursAgo(23), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysOverdue(tt.due, now); got != tt.want {
				t.Errorf("DaysOverdue() = %d, want %d", got, tt.want)
			}
		})
	}
}
