// Package signature implements the Beholder signature aggregator: fanning
// the Fischlin proof-of-work search out across independent iterations,
// collecting them into an index-addressed proof, and applying the
// half-threshold acceptance rule at verification time.
//
// The fan-out follows the teacher's peer-attestation pattern: a
// sync.WaitGroup plus a fixed-size results slice addressed by index
// (never an append-order channel drain), so the per-iteration ordering
// the prelude depends on is preserved regardless of goroutine completion
// order.
package signature

import (
	"fmt"
	"sync"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/fischlin"
	"github.com/marmistrz/beholders/pkg/hashing"
)

// FischIter is a slot in the signature: either a bare Schnorr commitment
// (the iteration exhausted its nonce budget) or a full BaseProof.
type FischIter struct {
	Commitment *curve.G1
	BaseProof  *fischlin.BaseProof
}

// A returns the Schnorr commitment point for this slot regardless of
// which variant it holds, which is all the prelude needs.
func (f FischIter) A() curve.G1 {
	if f.BaseProof != nil {
		return f.BaseProof.Schnorr.A
	}
	return *f.Commitment
}

// Proof is the full Beholder signature: one FischIter per Fischlin
// iteration, in iteration-index order.
type Proof struct {
	FischIters []FischIter
}

// Params mirrors fischlin.Params plus the iteration count, which must be
// even per the half-threshold acceptance rule.
type Params struct {
	NFisch     int
	Difficulty uint
	M          int

	// Hooks, if non-nil, is notified of per-iteration mining outcomes
	// during Prove. This keeps the package itself free of any particular
	// metrics backend; callers that want Prometheus counters supply
	// closures that update them (see cmd/beholder).
	Hooks *Hooks
}

// Hooks lets a caller observe per-Fischlin-iteration mining outcomes
// without this package depending on a metrics library directly.
type Hooks struct {
	OnAttempt func()
	OnSolved  func()
	OnGivenUp func()
}

func (h *Hooks) attempt() {
	if h != nil && h.OnAttempt != nil {
		h.OnAttempt()
	}
}

func (h *Hooks) solved() {
	if h != nil && h.OnSolved != nil {
		h.OnSolved()
	}
}

func (h *Hooks) givenUp() {
	if h != nil && h.OnGivenUp != nil {
		h.OnGivenUp()
	}
}

// PreconditionError reports a violated precondition on prove/verify input,
// distinct from a backend failure or a failed verification.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return "precondition: " + e.Msg }

func validateParams(dataLen int, params Params) error {
	if dataLen == 0 || dataLen&(dataLen-1) != 0 {
		return &PreconditionError{Msg: fmt.Sprintf("data length %d bytes is not a power of two", dataLen)}
	}
	if dataLen%32 != 0 {
		return &PreconditionError{Msg: fmt.Sprintf("data length %d bytes is not a multiple of 32", dataLen)}
	}
	if params.M > 32 {
		return &PreconditionError{Msg: fmt.Sprintf("m=%d exceeds 32", params.M)}
	}
	if params.Difficulty > 64 {
		return &PreconditionError{Msg: fmt.Sprintf("difficulty=%d exceeds 64", params.Difficulty)}
	}
	if params.NFisch%2 != 0 {
		return &PreconditionError{Msg: fmt.Sprintf("nfisch=%d must be even", params.NFisch)}
	}
	if params.NFisch >= 1<<16 {
		return &PreconditionError{Msg: fmt.Sprintf("nfisch=%d must be < 2^16", params.NFisch)}
	}
	return nil
}

// Prove chunks data into 32-byte field elements, commits and opens all of
// them via FK20, then mines nfisch independent Fischlin iterations in
// parallel and returns the aggregated proof alongside the commitment.
func Prove(ts *commitment.TrustedSetup, sk curve.Fr, data []byte, params Params) (*Proof, commitment.Commitment, error) {
	if err := validateParams(len(data), params); err != nil {
		return nil, commitment.Commitment{}, err
	}

	n := len(data) / 32
	chunks := make([]curve.Fr, n)
	for i := 0; i < n; i++ {
		chunks[i] = curve.ScalarFromBytesModOrder(data[i*32 : (i+1)*32])
	}

	fs := commitment.NewFFTSettings(uint64(n))
	com, openings, err := commitment.OpenAllFK20(ts, fs, chunks)
	if err != nil {
		return nil, commitment.Commitment{}, fmt.Errorf("signature: open commitment: %w", err)
	}

	rs := make([]curve.Fr, params.NFisch)
	for i := range rs {
		r, err := curve.RandomScalar()
		if err != nil {
			return nil, commitment.Commitment{}, fmt.Errorf("signature: draw commitment randomness: %w", err)
		}
		rs[i] = r
	}
	as := make([]curve.G1, params.NFisch)
	for i, r := range rs {
		as[i] = curve.MulG1(r)
	}

	pk := curve.MulG1(sk)
	prelude := computePrelude(pk, com, as)

	iterParams := fischlin.Params{Difficulty: params.Difficulty, M: params.M}
	results := make([]FischIter, params.NFisch)

	var wg sync.WaitGroup
	for i := 0; i < params.NFisch; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			params.Hooks.attempt()
			bp, ok := fischlin.Prove(uint64(i), prelude, chunks, openings, rs[i], sk, iterParams)
			if ok {
				params.Hooks.solved()
				results[i] = FischIter{BaseProof: &bp}
			} else {
				params.Hooks.givenUp()
				a := as[i]
				results[i] = FischIter{Commitment: &a}
			}
		}(i)
	}
	wg.Wait()

	return &Proof{FischIters: results}, com, nil
}

// Verify recomputes the prelude from the proof's commitments and pk, then
// checks each slot in parallel, accepting iff at least half verify.
func Verify(ts *commitment.TrustedSetup, com commitment.Commitment, pk curve.G1, dataLen int, proof *Proof, params Params) (bool, error) {
	ok, _, _, err := VerifyDetailed(ts, com, pk, dataLen, proof, params)
	return ok, err
}

// VerifyDetailed is Verify plus the raw (passed, total) iteration tally,
// for callers that need to report progress rather than a bare bool (the
// CLI's "Passed k/T Fischlin iterations" line).
func VerifyDetailed(ts *commitment.TrustedSetup, com commitment.Commitment, pk curve.G1, dataLen int, proof *Proof, params Params) (bool, int, int, error) {
	if err := validateParams(dataLen, params); err != nil {
		return false, 0, 0, err
	}
	t := len(proof.FischIters)
	if t%2 != 0 {
		return false, 0, t, &PreconditionError{Msg: fmt.Sprintf("proof has an odd number of iterations (%d)", t)}
	}

	n := dataLen / 32
	fs := commitment.NewFFTSettings(uint64(n))

	as := make([]curve.G1, t)
	for i, fi := range proof.FischIters {
		as[i] = fi.A()
	}
	prelude := computePrelude(pk, com, as)

	iterParams := fischlin.Params{Difficulty: params.Difficulty, M: params.M}
	valid := make([]bool, t)

	var wg sync.WaitGroup
	for i, fi := range proof.FischIters {
		wg.Add(1)
		go func(i int, fi FischIter) {
			defer wg.Done()
			if fi.BaseProof == nil {
				valid[i] = false
				return
			}
			valid[i] = fischlin.Verify(ts, fs, com, pk, uint64(i), prelude, n, *fi.BaseProof, iterParams)
		}(i, fi)
	}
	wg.Wait()

	count := 0
	for _, v := range valid {
		if v {
			count++
		}
	}
	return count*2 >= t, count, t, nil
}

func computePrelude(pk curve.G1, com commitment.Commitment, as []curve.G1) hashing.State {
	pkBytes := pk.Bytes()
	comBytes := com.Bytes()
	aBytes := make([][]byte, len(as))
	for i, a := range as {
		b := a.Bytes()
		aBytes[i] = b[:]
	}
	return hashing.Prelude(pkBytes[:], comBytes[:], aBytes)
}
