// Package commitment implements the KZG polynomial commitment layer: the
// trusted setup, the FFT-based interpolation over the data's evaluation
// domain, naive single-point proofs, and the FK20 batch-opening algorithm
// that produces all N opening proofs in O(N log N) instead of O(N^2).
package commitment

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	kzgbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/marmistrz/beholders/pkg/curve"
)

// TrustedSetup holds the KZG structured reference string: N powers of a
// secret tau in G1 and the two G2 points required by the pairing check.
type TrustedSetup struct {
	srs kzgbls12381.SRS
}

// NewTrustedSetup derives a deterministic (insecure, single-party) toy
// setup for `secrets` powers of tau from seed, the way a test harness or a
// local dev environment would — not an MPC ceremony. Grounded on the
// test-only SRS construction pattern (`NewSRS(size, alpha)`) used for
// non-production PLONK setups in the pack.
func NewTrustedSetup(secrets uint64, seed [32]byte) (*TrustedSetup, error) {
	alpha := seedToScalar(seed)
	var alphaBig big.Int
	alpha.BigInt(&alphaBig)

	srs, err := kzgbls12381.NewSRS(secrets, &alphaBig)
	if err != nil {
		return nil, fmt.Errorf("commitment: derive trusted setup: %w", err)
	}
	return &TrustedSetup{srs: *srs}, nil
}

func seedToScalar(seed [32]byte) fr.Element {
	digest := sha256.Sum256(seed[:])
	var s fr.Element
	s.SetBytes(digest[:])
	return s
}

// PowersG1 returns the G1 powers of tau, s^0..s^{n-1}, used directly by
// the FK20 Toeplitz construction.
func (ts *TrustedSetup) PowersG1() []curve.G1 {
	return ts.srs.Pk.G1
}

// VerifyingKey exposes the G2 points needed for the pairing check.
func (ts *TrustedSetup) VerifyingKey() kzgbls12381.VerifyingKey {
	return ts.srs.Vk
}

// Bytes and TrustedSetupFromBytes round-trip the setup through the SRS's
// gnark-crypto WriterTo/ReaderFrom encoding (used by the CLI's setup,
// prove and verify commands).
func (ts *TrustedSetup) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := ts.srs.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("commitment: serialize trusted setup: %w", err)
	}
	return buf.Bytes(), nil
}

func TrustedSetupFromBytes(b []byte) (*TrustedSetup, error) {
	var srs kzgbls12381.SRS
	buf := bytes.NewReader(b)
	if _, err := srs.ReadFrom(buf); err != nil {
		return nil, fmt.Errorf("commitment: deserialize trusted setup: %w", err)
	}
	return &TrustedSetup{srs: srs}, nil
}
