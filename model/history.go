package model

// DefaultHistoryDepth is the number of recent generations kept for cycle detection
const DefaultHistoryDepth = 5

// History remembers the hashes of recent generations to detect still lifes and short oscillators
type History struct {
	depth  int
	hashes []string
}

func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{depth: depth, hashes: make([]string, 0, depth)}
}

// Record adds a generation hash and returns the period of the cycle it closes,
// 1 for a still life, 2 for a period-2 oscillator and so on, or 0 if it was not seen recently
func (h *History) Record(hash string) (period int) {
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			period = len(h.hashes) - i
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.depth {
		h.hashes = h.hashes[1:]
	}
	return period
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = h.hashes[:0]
}
