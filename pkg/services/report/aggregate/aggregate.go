package aggregate

import (
	"math"
	"time"
)

// Window is an inclusive [start, end] range used to scope which operational
// records a generator considers. A nil bound leaves that side open; a window
// with both bounds nil matches everything.
type Window struct {
	start *time.Time
	end   *time.Time
}

// NewWindow builds a window from optional bounds. The end bound is pushed to
// the last instant of its day so "through end date" semantics hold.
func NewWindow(start, end *time.Time) Window {
	w := Window{start: start}
	if end != nil {
		e := endOfDay(*end)
		w.end = &e
	}
	return w
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.start != nil && t.Before(*w.start) {
		return false
	}
	if w.end != nil && t.After(*w.end) {
		return false
	}
	return true
}

func (w Window) Start() *time.Time { return w.start }
func (w Window) End() *time.Time   { return w.end }

// DateRange renders the window bounds as RFC3339 strings (nil when open) for
// embedding in generator results.
func (w Window) DateRange() map[string]any {
	r := map[string]any{"startDate": nil, "endDate": nil}
	if w.start != nil {
		r["startDate"] = w.start.Format(time.RFC3339)
	}
	if w.end != nil {
		r["endDate"] = w.end.Format(time.RFC3339)
	}
	return r
}

// Rate returns numerator/denominator as a percentage rounded to 2 decimals.
// A zero denominator yields 0 rather than an error.
func Rate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return round2(float64(numerator) / float64(denominator) * 100)
}

// Average is the zero-guarded plain mean of sum over count, rounded to 2
// decimals.
func Average(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return round2(float64(sum) / float64(count))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CountBy tallies items by the key function.
func CountBy[T any](items []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// Resolve maps an id to a display name, falling back to "Unknown" when the
// referenced entity is missing.
func Resolve(id string, names map[string]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}
