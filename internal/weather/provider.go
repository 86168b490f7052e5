package weather

import "github.com/ryota0051/033-web-api/internal/series"

// Source is the contract the series loader (and any future backing store)
// must satisfy. Implementations must not share mutable state between calls.
type Source interface {
	Locations() ([]string, error)
	Columns(location string) ([]string, error)
	Load(location string) (*series.Table, error)
}

var _ Source = (*series.Loader)(nil)
