package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_Update(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.Update(1, 10, 100*time.Millisecond)
	assert.Equal(t, 10.0, s.AveragePopulation)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9)

	s.Update(2, 20, 0)
	assert.InDelta(t, 11.0, s.AveragePopulation, 1e-9)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9, "zero durations keep the last rate")
	assert.Equal(t, 20, s.PeakPopulation)
	assert.Equal(t, 2, s.TotalGenerations)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "generation", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"generation":3`)

	buf.Reset()
	NewLogger("bogus", "text", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
