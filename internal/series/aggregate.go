package series

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation names one of the supported reductions.
type Aggregation string

const (
	AggSum    Aggregation = "sum"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
	AggMean   Aggregation = "mean"
	AggMedian Aggregation = "median"
)

// Reducer collapses a non-empty sequence of values into one.
type Reducer func(values []float64) float64

// Aggregations lists every supported aggregation in declaration order.
var Aggregations = []Aggregation{AggSum, AggMin, AggMax, AggMean, AggMedian}

var reducers = map[Aggregation]Reducer{
	AggSum:    floats.Sum,
	AggMin:    floats.Min,
	AggMax:    floats.Max,
	AggMean:   func(v []float64) float64 { return stat.Mean(v, nil) },
	AggMedian: median,
}

// ResolveAggregation maps a name to its Aggregation, failing with
// ErrUnknownAggregation and the list of valid names otherwise.
func ResolveAggregation(name string) (Aggregation, error) {
	agg := Aggregation(name)
	if _, ok := reducers[agg]; !ok {
		return "", newError(ErrUnknownAggregation, "aggregation func must be chosen from %s", AggregationNames())
	}
	return agg, nil
}

// AggregationNames returns the valid names joined by ", ".
func AggregationNames() string {
	names := make([]string, len(Aggregations))
	for i, a := range Aggregations {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// Apply reduces values. An empty input yields ErrNotFound because there is
// nothing to aggregate.
func (a Aggregation) Apply(values []float64) (float64, error) {
	r, ok := reducers[a]
	if !ok {
		return 0, newError(ErrUnknownAggregation, "aggregation func must be chosen from %s", AggregationNames())
	}
	if len(values) == 0 {
		return 0, newError(ErrNotFound, "no observations to aggregate")
	}
	return r(values), nil
}

// median averages the two middle values for an even count.
func median(values []float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}
