package domain

import "time"

// DateOnly truncates t to UTC midnight. All membership dates (join, dob,
// subscription windows) carry date-only semantics at the edges.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances a date-only value by n calendar months.
// Used to derive a subscription end date from a plan duration.
func AddMonths(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, n, 0)
}

// WindowsOverlap reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent windows (aEnd == bStart) do not overlap.
func WindowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return DateOnly(aStart).Before(DateOnly(bEnd)) && DateOnly(bStart).Before(DateOnly(aEnd))
}
