package utils

import "time"

// DateGroup returns the human-readable bucket a transaction date falls into:
// "Today", "Yesterday", or the formatted date ("Jan 02, 2006"). Buckets are
// computed against the current UTC date.
func DateGroup(date time.Time) string {
	return DateGroupAt(date, time.Now().UTC())
}

// DateGroupAt is DateGroup with an explicit reference time.
func DateGroupAt(date, now time.Time) string {
	day := date.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Jan 02, 2006")
	}
}
