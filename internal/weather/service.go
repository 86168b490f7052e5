package weather

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ryota0051/033-web-api/internal/series"
)

// Service runs the read-only query pipeline: parse inputs, load the series,
// validate the requested dates, then slice or aggregate.
type Service struct {
	source            Source
	referenceLocation string
	log               logrus.FieldLogger
}

// NewService creates a new Service. referenceLocation is the location whose
// header backs Columns.
func NewService(source Source, referenceLocation string, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return &Service{
		source:            source,
		referenceLocation: referenceLocation,
		log:               log,
	}
}

// Locations lists every location available in the source.
func (s *Service) Locations() ([]string, error) {
	return s.source.Locations()
}

// Columns returns the measurement columns of the reference location.
func (s *Service) Columns() ([]string, error) {
	return s.source.Columns(s.referenceLocation)
}

// LocationColumns returns the measurement columns of a given location.
func (s *Service) LocationColumns(location string) ([]string, error) {
	return s.source.Columns(location)
}

// Point returns the value of column at exactly date.
func (s *Service) Point(location, column, date string) (PointResult, error) {
	d, err := series.ParseDate(date)
	if err != nil {
		return PointResult{}, err
	}

	table, err := s.load(location)
	if err != nil {
		return PointResult{}, err
	}

	min, max, err := bounds(table)
	if err != nil {
		return PointResult{}, err
	}
	if err := series.CheckDateRange(d, min, max, "date"); err != nil {
		return PointResult{}, err
	}

	v, err := table.ValueAt(column, d)
	if err != nil {
		return PointResult{}, err
	}

	return PointResult{Location: location, Column: column, Date: d, Value: v}, nil
}

// Range returns every observation of column between start and end,
// both inclusive.
func (s *Service) Range(location, column, start, end string) (RangeResult, error) {
	table, from, to, err := s.window(location, start, end)
	if err != nil {
		return RangeResult{}, err
	}

	obs, err := table.Slice(column, from, to)
	if err != nil {
		return RangeResult{}, err
	}

	return RangeResult{Location: location, Column: column, Observations: obs}, nil
}

// Aggregate reduces column between start and end with the named aggregation.
func (s *Service) Aggregate(location, column, start, end, agg string) (AggregateResult, error) {
	table, from, to, err := s.window(location, start, end)
	if err != nil {
		return AggregateResult{}, err
	}

	obs, err := table.Slice(column, from, to)
	if err != nil {
		return AggregateResult{}, err
	}

	a, err := series.ResolveAggregation(agg)
	if err != nil {
		return AggregateResult{}, err
	}

	v, err := a.Apply(series.Values(obs))
	if err != nil {
		return AggregateResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"location":    location,
		"column":      column,
		"aggregation": a,
		"rows":        len(obs),
	}).Debug("aggregated series window")

	return AggregateResult{Location: location, Column: column, Aggregation: a, Value: v}, nil
}

// window parses and validates a start/end pair against the location's series.
func (s *Service) window(location, start, end string) (*series.Table, time.Time, time.Time, error) {
	from, err := series.ParseDate(start)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	to, err := series.ParseDate(end)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	table, err := s.load(location)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	min, max, err := bounds(table)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if err := series.CheckDateRange(from, min, max, "start"); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if err := series.CheckDateRange(to, min, max, "end"); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if err := series.CheckEndAfterStart(from, to); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	return table, from, to, nil
}

func (s *Service) load(location string) (*series.Table, error) {
	table, err := s.source.Load(location)
	if err != nil {
		s.log.WithField("location", location).WithError(err).Debug("series load failed")
		return nil, err
	}
	return table, nil
}

func bounds(table *series.Table) (time.Time, time.Time, error) {
	min, max, ok := table.Bounds()
	if !ok {
		return time.Time{}, time.Time{}, &series.QueryError{
			Kind:    series.ErrNotFound,
			Message: "location " + table.Location + " has no observations",
		}
	}
	return min, max, nil
}
