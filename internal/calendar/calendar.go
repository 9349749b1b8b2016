// Package calendar holds the Monday-anchored week arithmetic used to group
// fleet activity into weekly buckets.
package calendar

import "time"

// DayLabels lists the seven day labels in display order, Monday first.
var DayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekStart returns the Monday at 00:00:00 of the week containing t, in t's
// location. Sunday counts as the seventh day of the prior week.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the Sunday 23:59:59.999 that closes the week opened by
// weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	y, m, d := weekStart.Date()
	return time.Date(y, m, d+6, 23, 59, 59, int(999*time.Millisecond), weekStart.Location())
}

// DayLabel returns the three-letter label for t's weekday, with Sunday in
// the seventh position so Mon..Sun sorts contiguously.
func DayLabel(t time.Time) string {
	return DayLabels[(int(t.Weekday())+6)%7]
}
