// Package randutil builds the seedable random sources used for shuffling and bots.
package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The same seed always produces the same shuffle and deal sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromClock seeds from the clock's current time. Used when no seed is configured;
// the returned seed can be logged so a session can be replayed with New.
func NewFromClock(clock quartz.Clock) (*rand.Rand, int64) {
	seed := clock.Now().UnixNano()
	return New(seed), seed
}

// Derive returns the seed for the n-th independent child stream of seed, so parallel
// sessions never share a sequence.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
