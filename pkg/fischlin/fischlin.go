// Package fischlin implements the inner base-proof engine: the bounded
// proof-of-work search over the Schnorr challenge c that makes the
// protocol's Fischlin transform non-interactive.
package fischlin

import (
	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/hashing"
	"github.com/marmistrz/beholders/pkg/schnorr"
)

// BaseProof is one mined Fischlin iteration: a Schnorr transcript plus the
// m challenged data values and their openings.
type BaseProof struct {
	Schnorr  schnorr.Schnorr
	Data     []curve.Fr
	Openings []commitment.Opening
}

// Params bundles the parameters the mining loop and its verification need
// beyond the per-iteration transcript.
type Params struct {
	Difficulty uint
	M          int
}

// Prove searches c in ascending order starting at 0 for the first value
// such that the XOR of individual_hash over the m challenged positions has
// at least Difficulty trailing zero bits. Returns false if the entire
// [0, maxc(Difficulty)) range is exhausted without success.
func Prove(fischIter uint64, prelude hashing.State, data []curve.Fr, openings []commitment.Opening, r, sk curve.Fr, params Params) (BaseProof, bool) {
	n := len(data)
	maxc := schnorr.MaxC(params.Difficulty)

	for c := uint32(0); c < maxc; c++ {
		sch := schnorr.Prove(sk, r, c)

		idx := hashing.DeriveIndices(fischIter, c, params.M, n)

		var acc hashing.State
		for k, i := range idx {
			h := hashing.IndividualHash(prelude, sch.C, frBytes(sch.Z), fischIter, k, frBytes(data[i]), openingBytes(openings[i]))
			acc = hashing.XOR(acc, h)
		}

		if hashing.PowPass(acc, params.Difficulty) {
			bp := BaseProof{
				Schnorr:  sch,
				Data:     make([]curve.Fr, params.M),
				Openings: make([]commitment.Opening, params.M),
			}
			for k, i := range idx {
				bp.Data[k] = data[i]
				bp.Openings[k] = openings[i]
			}
			return bp, true
		}
	}

	return BaseProof{}, false
}

// Verify recomputes the challenged indices from bp.Schnorr.C and checks:
// the Schnorr transcript against pk, the KZG opening of each challenged
// position, and the proof-of-work threshold.
func Verify(ts *commitment.TrustedSetup, fs *commitment.FFTSettings, com commitment.Commitment, pk curve.G1, fischIter uint64, prelude hashing.State, dataLen int, bp BaseProof, params Params) bool {
	maxc := schnorr.MaxC(params.Difficulty)
	if bp.Schnorr.C >= maxc {
		return false
	}
	if !bp.Schnorr.Verify(pk) {
		return false
	}
	if len(bp.Data) != params.M || len(bp.Openings) != params.M {
		return false
	}

	idx := hashing.DeriveIndices(fischIter, bp.Schnorr.C, params.M, dataLen)

	var acc hashing.State
	for k, i := range idx {
		if !commitment.CheckProofSingle(ts, com, bp.Openings[k], fs.GetPoint(uint64(i)), bp.Data[k]) {
			return false
		}
		h := hashing.IndividualHash(prelude, bp.Schnorr.C, frBytes(bp.Schnorr.Z), fischIter, k, frBytes(bp.Data[k]), openingBytes(bp.Openings[k]))
		acc = hashing.XOR(acc, h)
	}

	return hashing.PowPass(acc, params.Difficulty)
}

func frBytes(f curve.Fr) []byte {
	b := curve.FrBytes(f)
	return b[:]
}

func openingBytes(o commitment.Opening) []byte {
	b := o.H.Bytes()
	return b[:]
}
