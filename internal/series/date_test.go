package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid date", input: "2022-01-01", want: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", input: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "slashes", input: "2022/01/01", wantErr: true},
		{name: "single digit month", input: "2022-1-01", wantErr: true},
		{name: "month out of range", input: "2022-13-01", wantErr: true},
		{name: "with time", input: "2022-01-01T00:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				assert.Equal(t, "date must be YYYY-MM-DD", err.Error())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseRowDate(t *testing.T) {
	want := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2022-01-03", "2022/01/03", "2022-01-03T00:00:00", "2022-01-03 00:00:00"} {
		got, ok := parseRowDate(s)
		assert.True(t, ok, s)
		assert.True(t, want.Equal(got), s)
	}

	_, ok := parseRowDate("03.01.2022")
	assert.False(t, ok)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2022-01-01T00:00:00", FormatTimestamp(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)))
}
