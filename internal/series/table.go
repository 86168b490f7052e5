package series

import (
	"sort"
	"time"
)

// Observation is a single dated measurement of one column.
type Observation struct {
	Date  time.Time
	Value float64
}

// Table is the in-memory, date-ordered series of one location. Every
// column slice is aligned with Dates.
type Table struct {
	Location string
	Columns  []string
	Dates    []time.Time

	values map[string][]float64
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Dates)
}

// Bounds returns the earliest and latest observation dates. ok is false for
// a table without rows.
func (t *Table) Bounds() (min, max time.Time, ok bool) {
	if len(t.Dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Dates[0], t.Dates[len(t.Dates)-1], true
}

// Column returns the values of a column, aligned with Dates.
func (t *Table) Column(name string) ([]float64, error) {
	vals, ok := t.values[name]
	if !ok {
		return nil, newError(ErrNotFound, "column %s not found", name)
	}
	return vals, nil
}

// ValueAt returns the value of column at exactly date. A date inside the
// table's bounds with no row (sparse series) yields ErrNotFound.
func (t *Table) ValueAt(column string, date time.Time) (float64, error) {
	vals, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	i := sort.Search(len(t.Dates), func(i int) bool {
		return !t.Dates[i].Before(date)
	})
	if i == len(t.Dates) || !t.Dates[i].Equal(date) {
		return 0, newError(ErrNotFound, "no observation for %s on %s", t.Location, date.Format(DateLayout))
	}
	return vals[i], nil
}

// Slice returns every observation of column with start <= date <= end.
func (t *Table) Slice(column string, start, end time.Time) ([]Observation, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	lo := sort.Search(len(t.Dates), func(i int) bool {
		return !t.Dates[i].Before(start)
	})
	hi := sort.Search(len(t.Dates), func(i int) bool {
		return t.Dates[i].After(end)
	})

	out := make([]Observation, 0, max(hi-lo, 0))
	for i := lo; i < hi; i++ {
		out = append(out, Observation{Date: t.Dates[i], Value: vals[i]})
	}
	return out, nil
}

// Values extracts the measurement values of a slice in date order.
func Values(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Value
	}
	return out
}
