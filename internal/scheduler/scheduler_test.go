package scheduler

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryota0051/033-web-api/internal/series"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAudit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tokyo.csv"),
		[]byte("date,daylight\n2022-01-01,1\n2022-01-02,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "osaka.csv"),
		[]byte("date,daylight\n2022-01-01,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kobe.csv"),
		[]byte("daylight\n1\n"), 0o644))

	s := New(series.NewLoader(dir), time.Minute, quietLogger())
	report := s.Audit()

	assert.Equal(t, 2, report.Locations)
	assert.Equal(t, 3, report.Rows)
	require.Contains(t, report.Failed, "kobe")
	assert.ErrorIs(t, report.Failed["kobe"], series.ErrMalformedSeries)
}

func TestStartDisabled(t *testing.T) {
	s := New(series.NewLoader(t.TempDir()), 0, quietLogger())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStartSchedulesJob(t *testing.T) {
	s := New(series.NewLoader(t.TempDir()), time.Hour, quietLogger())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.scheduler.Jobs(), 1)
}
