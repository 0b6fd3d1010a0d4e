package services

import "time"

const isoDate = "2006-01-02"

// DateAtLocation normalizes a timestamp to midnight of its calendar date
// in the given location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween returns the absolute number of whole days between the
// calendar dates of a and b. Both are collapsed to UTC dates first so the
// count never picks up DST drift.
func DaysBetween(a time.Time, b time.Time) int {
	dayA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	dayB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(dayB.Sub(dayA).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// SameCalendarDate compares two timestamps on their calendar date alone.
func SameCalendarDate(a time.Time, b time.Time, location *time.Location) bool {
	return DateAtLocation(a, location).Format(isoDate) == DateAtLocation(b, location).Format(isoDate)
}

// ISODate renders the calendar date of a timestamp in the given location.
func ISODate(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(isoDate)
}
