package pots

import "time"

// NextOccurrence returns the first occurrence of dayOfMonth strictly
// after now, rolling into the next month when this month's occurrence
// has already passed. It is used when a withdrawal is first scheduled;
// out-of-range days normalize the way time.Date does.
func NextOccurrence(now time.Time, dayOfMonth int) time.Time {
	next := time.Date(now.Year(), now.Month(), dayOfMonth, 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month()+1, dayOfMonth, 0, 0, 0, 0, now.Location())
	}
	return next
}

// NextRollover returns the due date after an execution at now: the
// day-of-month occurrence in the following month, with the day clamped
// to at most 28 so every month has it. If that candidate is still not
// strictly after now, it advances one more month with the same clamp.
func NextRollover(now time.Time, dayOfMonth int) time.Time {
	day := dayOfMonth
	if day > 28 {
		day = 28
	}
	if day < 1 {
		day = 1
	}
	next := time.Date(now.Year(), now.Month()+1, day, 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month()+2, day, 0, 0, 0, 0, now.Location())
	}
	return next
}
