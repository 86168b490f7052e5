package series

import "time"

// DateLayout is the only accepted layout for date parameters.
const DateLayout = "2006-01-02"

// TimestampLayout is used when dates are rendered back to callers.
const TimestampLayout = "2006-01-02T15:04:05"

// rowLayouts are tried in order when reading the date column of a file.
var rowLayouts = []string{
	DateLayout,
	"2006/01/02",
	TimestampLayout,
	"2006-01-02 15:04:05",
}

// ParseDate converts a YYYY-MM-DD parameter into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, newError(ErrInvalidFormat, "date must be YYYY-MM-DD")
	}
	return t, nil
}

func parseRowDate(s string) (time.Time, bool) {
	for _, layout := range rowLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way responses expose dates.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
