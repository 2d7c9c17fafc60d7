package domain

import (
	"strconv"
	"time"
)

// TrendingWindowKind selects the aggregation window for trending tags.
type TrendingWindowKind int

const (
	WindowDaily TrendingWindowKind = iota
	WindowWeekly
	WindowMonthly
)

// TrendingLimit is the fixed number of buckets returned by the trending
// aggregation.
const TrendingLimit = 10

// TrendingWindow is a tagged window variant: the last 24 hours, the last
// n weeks, or the last n months. It is selected exactly once at the HTTP
// boundary.
type TrendingWindow struct {
	kind       TrendingWindowKind
	multiplier int
}

func DailyWindow() TrendingWindow {
	return TrendingWindow{kind: WindowDaily}
}

func WeeklyWindow(n int) TrendingWindow {
	return TrendingWindow{kind: WindowWeekly, multiplier: n}
}

func MonthlyWindow(n int) TrendingWindow {
	return TrendingWindow{kind: WindowMonthly, multiplier: n}
}

func (w TrendingWindow) Kind() TrendingWindowKind {
	return w.kind
}

// Range computes the [start, end) interval ending at now. The caller
// anchors now in the reference time zone; the returned bounds are UTC.
func (w TrendingWindow) Range(now time.Time) (time.Time, time.Time) {
	end := now.UTC()
	var span time.Duration
	switch w.kind {
	case WindowWeekly:
		span = time.Duration(w.multiplier) * 7 * 24 * time.Hour
	case WindowMonthly:
		span = time.Duration(w.multiplier) * 30 * 24 * time.Hour
	default:
		span = 24 * time.Hour
	}
	return end.Add(-span), end
}

// SelectTrendingWindow resolves the raw weekly/monthly query parameters
// into a single window. Supplying both flags is rejected rather than
// silently honoring one of them, and a flag that is not a positive
// integer is a field error on that flag.
func SelectTrendingWindow(weekly, monthly string) (TrendingWindow, error) {
	if weekly != "" && monthly != "" {
		return TrendingWindow{}, NewValidationError("weekly", "weekly and monthly are mutually exclusive")
	}

	if weekly != "" {
		n, err := strconv.Atoi(weekly)
		if err != nil || n < 1 {
			return TrendingWindow{}, NewValidationError("weekly", "weekly must be a positive integer")
		}
		return WeeklyWindow(n), nil
	}

	if monthly != "" {
		n, err := strconv.Atoi(monthly)
		if err != nil || n < 1 {
			return TrendingWindow{}, NewValidationError("monthly", "monthly must be a positive integer")
		}
		return MonthlyWindow(n), nil
	}

	return DailyWindow(), nil
}

// TrendingTag is one bucket of the trending aggregation.
type TrendingTag struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
