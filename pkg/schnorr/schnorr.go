// Package schnorr implements the Schnorr proof-of-knowledge transcript
// used as the identity half of the Beholder signature: a commitment a,
// a bounded u32 challenge c, and a response z over BLS12-381's Fr/G1.
package schnorr

import (
	"github.com/marmistrz/beholders/pkg/curve"
)

// Schnorr is one (a, c, z) transcript.
type Schnorr struct {
	A curve.G1
	C uint32
	Z curve.Fr
}

// MaxC bounds the nonce search per Fischlin iteration: 1 << difficulty.
// An incoming proof with C >= MaxC(difficulty) must be rejected.
func MaxC(difficulty uint) uint32 {
	return 1 << difficulty
}

// Prove builds a transcript for secret key sk, commitment randomness r,
// and challenge c: a = r*G, z = r + fr(c)*sk.
func Prove(sk, r curve.Fr, c uint32) Schnorr {
	a := curve.MulG1(r)

	var fc curve.Fr
	fc.SetUint64(uint64(c))

	var z curve.Fr
	z.Mul(&fc, &sk)
	z.Add(&z, &r)

	return Schnorr{A: a, C: c, Z: z}
}

// Verify checks fr(c)*pk + a == z*G for the given public key pk = sk*G.
func (s Schnorr) Verify(pk curve.G1) bool {
	var fc curve.Fr
	fc.SetUint64(uint64(s.C))

	lhs := curve.MulPoint(fc, pk)
	lhs.Add(&lhs, &s.A)

	rhs := curve.MulG1(s.Z)

	return lhs.Equal(&rhs)
}
