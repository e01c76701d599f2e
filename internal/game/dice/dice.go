// Package dice provides the randomness abstraction shared by every
// probabilistic rule in the breeding engine.
package dice

// Source is the randomness provider for breeding rolls.
//
// A Source is passed explicitly into every probabilistic function so that a
// caller can substitute a seeded or scripted sequence. Implementations need
// not be safe for concurrent use; callers give each transaction its own Source.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// Chance reports whether a single uniform draw from src lands below p.
//
// Precondition: src must be non-nil.
// Postcondition: Exactly one value is drawn from src; p <= 0 never succeeds
// and p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns a uniform value in [lo, hi] scaled from a single draw.
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result <= hi; exactly one value is drawn from src.
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
