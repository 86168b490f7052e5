package weather

import (
	"time"

	"github.com/ryota0051/033-web-api/internal/series"
)

// PointResult is the value of one column at one date.
type PointResult struct {
	Location string
	Column   string
	Date     time.Time
	Value    float64
}

// RangeResult holds the observations of one column inside a date window,
// ordered by date.
type RangeResult struct {
	Location     string
	Column       string
	Observations []series.Observation
}

// AggregateResult is a column reduced over a date window.
type AggregateResult struct {
	Location    string
	Column      string
	Aggregation series.Aggregation
	Value       float64
}

// Key returns the response field name, e.g. "daylight_max".
func (r AggregateResult) Key() string {
	return r.Column + "_" + string(r.Aggregation)
}
