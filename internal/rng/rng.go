// Package rng provides seeded pseudo-random streams owned by a single
// subsystem.
//
// A Handle is never shared: each consumer (item generation, level layout)
// builds its own from the session seed and a stream constant, so the order in
// which subsystems draw numbers cannot change each other's results.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Stream constants select independent sequences for the same seed.
const (
	StreamItems   uint64 = 0x6974656d73
	StreamDungeon uint64 = 0x64756e67656f6e
)

// Handle is a deterministic random stream.
type Handle struct {
	src *rand.PCG
	r   *rand.Rand
}

// New returns a stream for seed. Equal (seed, stream) pairs produce equal
// sequences.
func New(seed, stream uint64) *Handle {
	src := rand.NewPCG(seed, stream)
	return &Handle{src: src, r: rand.New(src)}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Intn returns a number in [0, n). It returns 0 when n <= 0.
func (h *Handle) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return h.r.IntN(n)
}

// Range returns a number in [lo, hi). It returns lo when the range is empty.
func (h *Handle) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + h.r.IntN(hi-lo)
}

// Percent returns true with probability pct/100.
func (h *Handle) Percent(pct int) bool {
	return h.r.IntN(100) < pct
}

// OneIn returns true with probability 1/n.
func (h *Handle) OneIn(n int) bool {
	return n > 0 && h.r.IntN(n) == 0
}

// Perm returns a random permutation of [0, n).
func (h *Handle) Perm(n int) []int {
	if n <= 0 {
		return nil
	}
	return h.r.Perm(n)
}

// Choose returns a random element of s.
func Choose[T any](h *Handle, s []T) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[h.r.IntN(len(s))], true
}

// MarshalBinary encodes the current state of the stream.
func (h *Handle) MarshalBinary() ([]byte, error) {
	return h.src.MarshalBinary()
}

// UnmarshalBinary restores a state written by MarshalBinary.
func (h *Handle) UnmarshalBinary(data []byte) error {
	if h.src == nil {
		h.src = rand.NewPCG(0, 0)
		h.r = rand.New(h.src)
	}
	if err := h.src.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("rng: restore state: %w", err)
	}
	return nil
}
