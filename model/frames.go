package model

import "iter"

// Frames yields (generation, rendered frame) pairs starting with the seed itself.
// The sequence never ends on its own; the consumer stops it by breaking out of the loop.
// Each range over the sequence starts again from the seed.
func Frames(seed *Grid) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		eng, err := NewEngineFromGrid(seed)
		if err != nil {
			return
		}
		for {
			if !yield(eng.Generation(), eng.Render()) {
				return
			}
			eng.Step()
		}
	}
}
