package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ryota0051/033-web-api/internal/common"
)

// DateColumn is the header name of the key column in every series file.
const DateColumn = "date"

const fileExt = ".csv"

// Loader reads per-location series files from a fixed data root.
// It holds no state besides the root and is safe for concurrent use.
type Loader struct {
	root string
}

// NewLoader creates a Loader reading <root>/<location>.csv files.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Root returns the data root directory.
func (l *Loader) Root() string {
	return l.root
}

func (l *Loader) path(location string) (string, error) {
	if location == "" || strings.HasPrefix(location, ".") || common.HasAny(location, "/", `\`) {
		return "", newError(ErrNotFound, "location not found")
	}
	return filepath.Join(l.root, location+fileExt), nil
}

// Locations lists the location identifiers present under the data root.
// A missing root yields an empty list.
func (l *Loader) Locations() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read data root %s: %w", l.root, err)
	}

	locs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		locs = append(locs, common.Stem(e.Name()))
	}
	return locs, nil
}

// Columns returns the measurement column names of a location in file order,
// reading only the header row.
func (l *Loader) Columns(location string) ([]string, error) {
	f, err := l.open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := newReader(f).Read()
	if err != nil {
		return nil, newError(ErrMalformedSeries, "series %s: read header: %v", location, err)
	}
	_, cols, err := splitHeader(location, header)
	return cols, err
}

// Load parses the whole series of a location. The date column is parsed as
// a date-time and every other column as float64; rows are returned sorted
// by date.
func (l *Loader) Load(location string) (*Table, error) {
	f, err := l.open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := newReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, newError(ErrMalformedSeries, "series %s: read header: %v", location, err)
	}
	dateIdx, cols, err := splitHeader(location, header)
	if err != nil {
		return nil, err
	}

	type row struct {
		date time.Time
		vals []float64
	}
	var rows []row

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newError(ErrMalformedSeries, "series %s: line %d: %v", location, line, err)
		}

		date, ok := parseRowDate(strings.TrimSpace(record[dateIdx]))
		if !ok {
			return nil, newError(ErrMalformedSeries, "series %s: line %d: invalid date %q", location, line, record[dateIdx])
		}

		vals := make([]float64, 0, len(cols))
		for i, cell := range record {
			if i == dateIdx {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, newError(ErrMalformedSeries, "series %s: line %d: column %s: invalid number %q",
					location, line, header[i], cell)
			}
			vals = append(vals, v)
		}
		rows = append(rows, row{date: date, vals: vals})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})

	t := &Table{
		Location: location,
		Columns:  cols,
		Dates:    make([]time.Time, len(rows)),
		values:   make(map[string][]float64, len(cols)),
	}
	for _, c := range cols {
		t.values[c] = make([]float64, len(rows))
	}
	for i, rw := range rows {
		if i > 0 && rw.date.Equal(rows[i-1].date) {
			return nil, newError(ErrMalformedSeries, "series %s: duplicate date %s", location, rw.date.Format(DateLayout))
		}
		t.Dates[i] = rw.date
		for j, c := range cols {
			t.values[c][i] = rw.vals[j]
		}
	}
	return t, nil
}

func (l *Loader) open(location string) (*os.File, error) {
	p, err := l.path(location)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, "location not found")
		}
		return nil, fmt.Errorf("open series %s: %w", location, err)
	}
	return f, nil
}

// newReader is shared by Columns and Load so both see the same header.
func newReader(f io.Reader) *csv.Reader {
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	return r
}

// splitHeader locates the date column and returns the remaining names.
func splitHeader(location string, header []string) (int, []string, error) {
	dateIdx := -1
	cols := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
			header[0] = name
		}
		if seen[name] {
			return 0, nil, newError(ErrMalformedSeries, "series %s: duplicate column %q", location, name)
		}
		seen[name] = true
		if name == DateColumn {
			dateIdx = i
			continue
		}
		cols = append(cols, name)
	}
	if dateIdx < 0 {
		return 0, nil, newError(ErrMalformedSeries, "series %s: missing %q column", location, DateColumn)
	}
	return dateIdx, cols, nil
}
