package oram

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// LeafSource draws leaf indices for position map assignments. The remap on
// every access is what makes repeated accesses to the same block look like
// independent path draws, so production stores must use a
// cryptographically strong source.
type LeafSource interface {
	// Leaf returns a uniform index in [0, numLeaves).
	Leaf(numLeaves int) (int, error)
}

// CryptoLeafSource draws leaves from crypto/rand.
type CryptoLeafSource struct{}

// Leaf returns a cryptographically random leaf index.
func (CryptoLeafSource) Leaf(numLeaves int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(numLeaves)))
	if err != nil {
		return 0, fmt.Errorf("draw leaf: %w", err)
	}
	return int(n.Int64()), nil
}

// SeededLeafSource draws leaves from a seeded math/rand generator. Use for
// tests and reproducible workloads only; it is not a CSPRNG.
type SeededLeafSource struct {
	rng *mrand.Rand
}

// NewSeededLeafSource creates a deterministic leaf source.
func NewSeededLeafSource(seed int64) *SeededLeafSource {
	return &SeededLeafSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Leaf returns the next leaf index from the seeded generator.
func (s *SeededLeafSource) Leaf(numLeaves int) (int, error) {
	return s.rng.Intn(numLeaves), nil
}
