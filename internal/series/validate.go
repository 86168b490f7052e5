package series

import "time"

// CheckDateRange fails with ErrOutOfRange unless min <= date <= max.
// label names the offending parameter in the message.
func CheckDateRange(date, min, max time.Time, label string) error {
	if date.Before(min) || date.After(max) {
		return newError(ErrOutOfRange, "%s must be between %s and %s",
			label, FormatTimestamp(min), FormatTimestamp(max))
	}
	return nil
}

// CheckEndAfterStart fails with ErrInvalidRange unless end is strictly after
// start. A single-day window (start == end) is rejected.
func CheckEndAfterStart(start, end time.Time) error {
	if !end.After(start) {
		return newError(ErrInvalidRange, "end must be greater than start")
	}
	return nil
}
