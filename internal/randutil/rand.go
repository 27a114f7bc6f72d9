package randutil

import (
	crand "crypto/rand"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All call sites that need reproducible shuffles (tests, seeded simulations,
// the CLI's --seed flag) derive their generator here.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSecure returns a generator seeded from the operating system's entropy
// source. Rounds use it when no generator is injected.
func NewSecure() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Derive returns a child generator for stream i of a seeded run, so that
// concurrent workers shuffle independently but reproducibly.
func Derive(seed int64, i int) *rand.Rand {
	u := mix(uint64(seed)) ^ mix(uint64(i)+goldenRatio64)
	return rand.New(rand.NewPCG(u, mix(u)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
