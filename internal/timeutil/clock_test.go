package timeutil

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tikk3r/prefactor-eor/internal/logger"
)

func TestRealClock_Now(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	assert.False(t, got.Before(before))
}

func TestFormatISO(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole seconds", time.Date(2026, 10, 18, 9, 5, 3, 0, time.UTC), "2026-10-18T09:05:03"},
		{"microseconds", time.Date(2026, 10, 18, 9, 5, 3, 1500, time.UTC), "2026-10-18T09:05:03.000001"},
		{"half second", time.Date(2026, 10, 18, 9, 5, 3, 500_000_000, time.UTC), "2026-10-18T09:05:03.500000"},
		{"converted to UTC", time.Date(2026, 10, 18, 11, 0, 0, 0, time.FixedZone("CEST", 2*3600)), "2026-10-18T09:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatISO(tt.in))
		})
	}
}

func TestStartTime(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	clock := FixedClock{T: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2026-10-18T12:00:00", StartTime(clock, ""))
	assert.Equal(t, "1970-01-01T00:00:00", StartTime(clock, "0"))
	assert.Equal(t, "2001-09-09T01:46:40.250000", StartTime(clock, "1000000000.25"))
	assert.Empty(t, buf.String())

	assert.Equal(t, "2026-10-18T12:00:00", StartTime(clock, "yesterday"))
	assert.Contains(t, buf.String(), `[WARN] start time "yesterday"`)

	buf.Reset()
	assert.Equal(t, "2026-10-18T12:00:00", StartTime(clock, "1e300"))
	assert.Contains(t, buf.String(), "[WARN]")
}
