package commitment

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/marmistrz/beholders/pkg/curve"
)

// FFTSettings wraps the evaluation domain for a fixed N (a power of two):
// the N primitive N-th roots of unity, used both for interpolation and
// for the FK20 batch opening.
type FFTSettings struct {
	domain *fft.Domain
	n      uint64
}

// NewFFTSettings builds a domain over n points; n must be a power of two.
func NewFFTSettings(n uint64) *FFTSettings {
	return &FFTSettings{domain: curve.NewDomain(n), n: n}
}

// N returns the domain size.
func (fs *FFTSettings) N() uint64 { return fs.n }

// Polynomial is a coefficient-form polynomial over Fr, lowest degree first.
type Polynomial []curve.Fr

// Interpolate runs an inverse FFT over data (N evaluations at the N
// primitive N-th roots) to recover the coefficient polynomial p with
// p(omega_i) = data[i].
func Interpolate(fs *FFTSettings, data []curve.Fr) Polynomial {
	coeffs := make(Polynomial, len(data))
	copy(coeffs, data)
	fs.domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

// GetPoint returns the i-th point of the N-point domain, omega^i, where
// omega is the domain's canonical primitive N-th root of unity.
func (fs *FFTSettings) GetPoint(i uint64) curve.Fr {
	var out curve.Fr
	out.Exp(fs.domain.Generator, big.NewInt(0).SetUint64(i))
	return out
}
