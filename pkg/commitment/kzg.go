package commitment

import (
	"fmt"
	"math/big"

	kzgbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/marmistrz/beholders/pkg/curve"
)

// Commitment is a KZG commitment to a polynomial: a single G1 point.
type Commitment = curve.G1

// Opening is a KZG single-point opening proof: the commitment to the
// quotient polynomial (p(X) - p(z)) / (X - z).
type Opening struct {
	H curve.G1
}

// CommitToPoly commits to poly's coefficients against the trusted setup.
func CommitToPoly(ts *TrustedSetup, poly Polynomial) (Commitment, error) {
	digest, err := kzgbls12381.Commit(poly, ts.srs.Pk)
	if err != nil {
		return Commitment{}, fmt.Errorf("commitment: commit to polynomial: %w", err)
	}
	return Commitment(digest), nil
}

// ComputeProofSingle opens poly at point using the naive O(N) construction,
// used as the reference implementation FK20's batched result must agree with.
func ComputeProofSingle(ts *TrustedSetup, poly Polynomial, point curve.Fr) (Opening, error) {
	proof, err := kzgbls12381.Open(poly, point, ts.srs.Pk)
	if err != nil {
		return Opening{}, fmt.Errorf("commitment: open single point: %w", err)
	}
	return Opening{H: proof.H}, nil
}

// CheckProofSingle verifies that opening attests commitment evaluates to
// value at point.
func CheckProofSingle(ts *TrustedSetup, commitment Commitment, opening Opening, point, value curve.Fr) bool {
	proof := kzgbls12381.OpeningProof{H: opening.H, ClaimedValue: value}
	digest := kzgbls12381.Digest(commitment)
	return kzgbls12381.Verify(&digest, &proof, point, ts.srs.Vk) == nil
}

// OpenAllFK20 commits to data (its interpolated polynomial) and produces
// all N single-point opening proofs in O(N log N), via the
// Feist-Khovratovich batched-opening construction: the N quotient
// polynomials' commitments share a Toeplitz structure, computable as one
// size-2N convolution (an inverse FFT over G1 following a pointwise
// product with an FFT'd coefficient vector) followed by one size-2N
// forward FFT over G1 that evaluates all the per-point proofs at once.
// Only the even-indexed outputs (the N-th roots of unity) are kept.
func OpenAllFK20(ts *TrustedSetup, fs *FFTSettings, data []curve.Fr) (Commitment, []Opening, error) {
	n := len(data)
	if n == 0 || n&(n-1) != 0 {
		return Commitment{}, nil, fmt.Errorf("commitment: data length %d is not a power of two", n)
	}

	poly := Interpolate(fs, data)

	com, err := CommitToPoly(ts, poly)
	if err != nil {
		return Commitment{}, nil, err
	}

	h, err := toeplitzH(ts, poly)
	if err != nil {
		return Commitment{}, nil, err
	}

	all := fftG1(h, false)

	openings := make([]Opening, n)
	for i := 0; i < n; i++ {
		openings[i] = Opening{H: all[2*i]}
	}
	return com, openings, nil
}

// toeplitzH computes the length-2N Toeplitz product vector whose forward
// FFT (taken by the caller) yields every quotient-polynomial commitment.
func toeplitzH(ts *TrustedSetup, poly Polynomial) ([]curve.G1, error) {
	d := len(poly)
	powers := ts.PowersG1()
	if len(powers) < d {
		return nil, fmt.Errorf("commitment: trusted setup too small for degree %d", d-1)
	}

	v := make([]curve.G1, 2*d)
	for i := 0; i < d-1; i++ {
		v[i] = powers[d-2-i]
	}
	vFFT := fftG1(v, false)

	u := make([]curve.Fr, 2*d)
	for i := 0; i < d-1; i++ {
		u[i] = poly[i+1]
	}
	uFFT := fftFr(u, false)

	prodFFT := make([]curve.G1, 2*d)
	for i := range prodFFT {
		prodFFT[i] = curve.MulPoint(uFFT[i], vFFT[i])
	}

	// The linear convolution holds the quotient coefficient commitment h_m
	// at index d-2+m; move h_0..h_{d-2} to the front and zero the rest.
	conv := fftG1(prodFFT, true)
	h := make([]curve.G1, 2*d)
	for m := 0; m < d-1; m++ {
		h[m] = conv[d-2+m]
	}
	return h, nil
}

// fftG1 computes the forward or inverse FFT of a power-of-two-length
// slice of G1 points over BLS12-381's scalar field's roots of unity,
// using the same radix-2 Cooley-Tukey structure as a field-element FFT
// with point addition/subtraction and scalar multiplication in place of
// field multiplication.
func fftG1(values []curve.G1, inverse bool) []curve.G1 {
	n := len(values)
	domain := curve.NewDomain(uint64(n))
	root := domain.Generator
	if inverse {
		root = domain.GeneratorInv
	}

	out := make([]curve.G1, n)
	copy(out, values)
	bitReverseG1(out)

	for size := 2; size <= n; size *= 2 {
		halfSize := size / 2
		var w curve.Fr
		w.Exp(root, big.NewInt(int64(n/size)))
		for start := 0; start < n; start += size {
			var wi curve.Fr
			wi.SetOne()
			for i := 0; i < halfSize; i++ {
				evenIdx := start + i
				oddIdx := start + i + halfSize
				t := curve.MulPoint(wi, out[oddIdx])
				var sum, diff curve.G1
				sum.Add(&out[evenIdx], &t)
				diff.Sub(&out[evenIdx], &t)
				out[evenIdx] = sum
				out[oddIdx] = diff
				wi.Mul(&wi, &w)
			}
		}
	}

	if inverse {
		var nInv curve.Fr
		nInv.SetUint64(uint64(n))
		nInv.Inverse(&nInv)
		for i := range out {
			out[i] = curve.MulPoint(nInv, out[i])
		}
	}

	return out
}

// fftFr is fftG1's field-element twin, used to transform the polynomial
// side of the Toeplitz product with the same index convention.
func fftFr(values []curve.Fr, inverse bool) []curve.Fr {
	n := len(values)
	domain := curve.NewDomain(uint64(n))
	root := domain.Generator
	if inverse {
		root = domain.GeneratorInv
	}

	out := make([]curve.Fr, n)
	copy(out, values)
	bitReverseFr(out)

	for size := 2; size <= n; size *= 2 {
		halfSize := size / 2
		var w curve.Fr
		w.Exp(root, big.NewInt(int64(n/size)))
		for start := 0; start < n; start += size {
			var wi curve.Fr
			wi.SetOne()
			for i := 0; i < halfSize; i++ {
				evenIdx := start + i
				oddIdx := start + i + halfSize
				var t curve.Fr
				t.Mul(&wi, &out[oddIdx])
				var sum, diff curve.Fr
				sum.Add(&out[evenIdx], &t)
				diff.Sub(&out[evenIdx], &t)
				out[evenIdx] = sum
				out[oddIdx] = diff
				wi.Mul(&wi, &w)
			}
		}
	}

	if inverse {
		var nInv curve.Fr
		nInv.SetUint64(uint64(n))
		nInv.Inverse(&nInv)
		for i := range out {
			out[i].Mul(&out[i], &nInv)
		}
	}

	return out
}

func bitReverseG1(a []curve.G1) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func bitReverseFr(a []curve.Fr) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}
