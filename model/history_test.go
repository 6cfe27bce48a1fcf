package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		depth  int
		hashes []string
		want   []int
	}{
		{name: "still life", depth: 5, hashes: []string{"a", "a", "a"}, want: []int{0, 1, 1}},
		{name: "period two", depth: 5, hashes: []string{"a", "b", "a", "b"}, want: []int{0, 0, 2, 2}},
		{name: "no cycle", depth: 5, hashes: []string{"a", "b", "c", "d"}, want: []int{0, 0, 0, 0}},
		{name: "cycle longer than window", depth: 2, hashes: []string{"a", "b", "c", "a"}, want: []int{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.depth)
			got := make([]int, 0, len(tt.hashes))
			for _, hash := range tt.hashes {
				got = append(got, h.Record(hash))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistory_Reset(t *testing.T) {
	t.Parallel()

	h := NewHistory(0)
	h.Record("a")
	h.Reset()
	assert.Equal(t, 0, h.Record("a"))
}

func TestHistory_DetectsPentadecathlonPeriod(t *testing.T) {
	t.Parallel()

	seed, err := Pattern("pentadecathlon")
	require.NoError(t, err)
	eng, err := NewEngineFromGrid(seed)
	require.NoError(t, err)

	h := NewHistory(20)
	period := h.Record(eng.Hash())
	for i := 0; i < 30 && period == 0; i++ {
		eng.Step()
		period = h.Record(eng.Hash())
	}
	assert.Equal(t, 15, period)
	assert.Equal(t, 15, eng.Generation())
}
