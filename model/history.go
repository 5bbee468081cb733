package model

// stagnationWindow is how many recent generations a repeat is looked for in:
// a still life repeats after 1, period 2 and 3 oscillators after 2 and 3.
const stagnationWindow = 3

// History stores recent generation hashes for cycle detection
type History struct {
	size   int
	hashes []string
}

// NewHistory returns a History remembering at most size generations
func NewHistory(size int) *History {
	return &History{size: size}
}

// Record adds a generation to the history, dropping the oldest one when full
func (h *History) Record(s Snapshot) {
	if h.size <= 0 {
		return
	}
	h.hashes = append(h.hashes, s.Hash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether s repeats one of the last recorded generations,
// meaning the pattern is static or stuck in a short cycle.
func (h *History) IsStagnant(s Snapshot) bool {
	current := s.Hash()
	for i := 1; i <= stagnationWindow && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = nil
}
