package dice

import "sync"

// SequenceSource replays a fixed list of draws, wrapping around at the end.
// It exists so rules can be pinned to an exact outcome in tests and replays.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
	drawn  int
}

// NewSequenceSource returns a SequenceSource that yields values in order.
//
// Precondition: len(values) > 0 and every value is in [0, 1).
// Postcondition: The i-th draw returns values[i % len(values)].
func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		panic("dice: NewSequenceSource precondition violated: values must be non-empty")
	}
	for _, v := range values {
		if v < 0 || v >= 1 {
			panic("dice: NewSequenceSource precondition violated: values must be in [0, 1)")
		}
	}
	return &SequenceSource{values: append([]float64(nil), values...)}
}

// Float64 returns the next scripted value.
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.drawn++
	return v
}

// Intn scales the next scripted value into [0, n).
//
// Precondition: n > 0.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return int(s.Float64() * float64(n))
}

// Drawn returns how many values have been consumed so far.
func (s *SequenceSource) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}
