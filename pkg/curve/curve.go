// Package curve adapts the BLS12-381 scalar field and groups from
// gnark-crypto to the Beholder signature protocol's needs: Schnorr
// scalars/points on G1 and the FFT domain used by the commitment layer.
package curve

import (
	"fmt"
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// Sizes of the canonical, compressed encodings used throughout the wire format.
const (
	FrSize = fr.Bytes
	G1Size = bls12381.SizeOfG1AffineCompressed
	G2Size = bls12381.SizeOfG2AffineCompressed
)

var (
	initOnce sync.Once

	g1Gen bls12381.G1Affine
	g2Gen bls12381.G2Affine
)

// Init must be called before any curve operation; safe to call repeatedly.
func Init() {
	initOnce.Do(func() {
		_, _, g1Gen, g2Gen = bls12381.Generators()
	})
}

// G1Generator returns the canonical G1 base point used by Schnorr commitments.
func G1Generator() bls12381.G1Affine {
	Init()
	return g1Gen
}

// G2Generator returns the canonical G2 base point, used by the KZG setup's Vk.
func G2Generator() bls12381.G2Affine {
	Init()
	return g2Gen
}

// Fr is the scalar field of BLS12-381, re-exported for callers that only
// need to name the type without importing gnark-crypto directly.
type Fr = fr.Element

// G1 is an affine point on the BLS12-381 G1 curve.
type G1 = bls12381.G1Affine

// G2 is an affine point on the BLS12-381 G2 curve.
type G2 = bls12381.G2Affine

// RandomScalar draws a uniformly random element of Fr using crypto/rand
// under the hood (gnark-crypto's fr.Element.SetRandom wraps crypto/rand).
func RandomScalar() (Fr, error) {
	var s Fr
	if _, err := s.SetRandom(); err != nil {
		return Fr{}, fmt.Errorf("draw random scalar: %w", err)
	}
	return s, nil
}

// ScalarFromBytesModOrder interprets 32 little-endian bytes as a field
// element, reducing modulo |Fr| rather than rejecting out-of-range input.
// This mirrors the original implementation's unchecked byte-to-scalar path.
//
// gnark-crypto's fr.Element.SetBytes treats its input as big-endian, so the
// bytes are reversed before the call; FrBytes is the matching encode-side
// reversal.
func ScalarFromBytesModOrder(b []byte) Fr {
	be := reversed(b)
	var s Fr
	s.SetBytes(be)
	return s
}

// FrBytes canonically encodes f as 32 little-endian bytes, per the wire
// format's Fr convention. The symmetric counterpart of
// ScalarFromBytesModOrder.
func FrBytes(f Fr) [FrSize]byte {
	be := f.Bytes()
	var le [FrSize]byte
	for i, v := range be {
		le[FrSize-1-i] = v
	}
	return le
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// MulG1 computes s*G1Generator.
func MulG1(s Fr) G1 {
	Init()
	var bi big.Int
	s.BigInt(&bi)
	var out G1
	out.ScalarMultiplication(&g1Gen, &bi)
	return out
}

// MulPoint computes s*p for an arbitrary G1 point p (not necessarily the
// generator), used by Schnorr verification against a caller-supplied
// public key.
func MulPoint(s Fr, p G1) G1 {
	var bi big.Int
	s.BigInt(&bi)
	var out G1
	out.ScalarMultiplication(&p, &bi)
	return out
}

// NewDomain builds an FFT evaluation domain of the given size (must be a
// power of two), used by the commitment layer for interpolation and FK20.
func NewDomain(size uint64) *fft.Domain {
	return fft.NewDomain(size)
}
