package kaboom

import "time"

// Linear congruential generator constants.
const (
	rngA = 1103515245
	rngC = 12345
	rngM = 2147483648
)

// RNG is a deterministic linear congruential generator. Two RNGs seeded
// with the same value produce identical sequences.
type RNG struct {
	seed uint64
}

// NewRNG creates a generator with the given seed.
func NewRNG(seed int64) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// timeSeed returns a seed taken from the wall clock.
func timeSeed() int64 { return time.Now().UnixMilli() }

// Seed resets the sequence.
func (r *RNG) Seed(seed int64) {
	r.seed = uint64(seed) % rngM
}

// Gen returns the next value in [0, 1).
func (r *RNG) Gen() float64 {
	r.seed = (rngA*r.seed + rngC) % rngM
	return float64(r.seed) / rngM
}

// GenN returns a value in [0, b).
func (r *RNG) GenN(b float64) float64 {
	return r.Gen() * b
}

// GenRange returns a value in [a, b).
func (r *RNG) GenRange(a, b float64) float64 {
	return a + r.Gen()*(b-a)
}

// GenVec2 generates each component independently in [a, b).
func (r *RNG) GenVec2(a, b Vec2) Vec2 {
	return Vec2{
		r.GenRange(a.X, b.X),
		r.GenRange(a.Y, b.Y),
	}
}

// GenColor generates each channel independently in [a, b).
func (r *RNG) GenColor(a, b Color) Color {
	return Color{
		r.GenRange(a.R, b.R),
		r.GenRange(a.G, b.G),
		r.GenRange(a.B, b.B),
		r.GenRange(a.A, b.A),
	}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Gen() <= p
}

// Choose picks a random element of list. It returns the zero value for an
// empty list.
func Choose[T any](r *RNG, list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	return list[int(r.GenN(float64(len(list))))]
}
