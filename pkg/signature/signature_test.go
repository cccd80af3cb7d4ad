package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	ts, err := commitment.NewTrustedSetup(32, [32]byte{1})
	require.NoError(t, err)

	sk, err := curve.RandomScalar()
	require.NoError(t, err)

	data := make([]byte, 128) // 4 chunks of 32 bytes, a power of two
	for i := range data {
		data[i] = byte(i)
	}

	params := Params{NFisch: 4, Difficulty: 2, M: 8}

	proof, com, err := Prove(ts, sk, data, params)
	require.NoError(t, err)
	require.Len(t, proof.FischIters, params.NFisch)

	pk := curve.MulG1(sk)
	ok, err := Verify(ts, com, pk, len(data), proof, params)
	require.NoError(t, err)
	require.True(t, ok, "a freshly produced proof must verify")
}

func TestValidateParamsRejectsOddNFisch(t *testing.T) {
	err := validateParams(128, Params{NFisch: 3, Difficulty: 1, M: 4})
	require.Error(t, err)
	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
}

func TestValidateParamsRejectsNonPowerOfTwoLength(t *testing.T) {
	err := validateParams(100, Params{NFisch: 2, Difficulty: 1, M: 4})
	require.Error(t, err)
}

// TestVerifyThresholdBoundary pins the half-threshold acceptance rule's
// boundary at count*2 >= t (pkg/signature's VerifyDetailed): exactly half
// valid must still accept, and one below half must reject. Difficulty 0
// makes every iteration succeed on its first nonce deterministically, so
// slots can be degraded to bare Commitment variants (which VerifyDetailed
// always treats as invalid) without depending on random mining outcomes.
func TestVerifyThresholdBoundary(t *testing.T) {
	ts, err := commitment.NewTrustedSetup(32, [32]byte{5})
	require.NoError(t, err)

	sk, err := curve.RandomScalar()
	require.NoError(t, err)

	data := make([]byte, 128)
	for i := range data {
		data[i] = byte(i)
	}

	const nfisch = 8
	params := Params{NFisch: nfisch, Difficulty: 0, M: 4}

	proof, com, err := Prove(ts, sk, data, params)
	require.NoError(t, err)
	for _, fi := range proof.FischIters {
		require.NotNil(t, fi.BaseProof, "difficulty 0 must succeed on the first nonce")
	}
	pk := curve.MulG1(sk)

	// degrade replaces the first n slots with bare commitments, keeping
	// each slot's Schnorr.A so the recomputed prelude (and every
	// surviving slot's challenged indices) is unchanged.
	degrade := func(n int) *Proof {
		iters := make([]FischIter, nfisch)
		for i, fi := range proof.FischIters {
			if i < n {
				a := fi.A()
				iters[i] = FischIter{Commitment: &a}
			} else {
				iters[i] = fi
			}
		}
		return &Proof{FischIters: iters}
	}

	exact := degrade(nfisch / 2)
	ok, passed, total, err := VerifyDetailed(ts, com, pk, len(data), exact, params)
	require.NoError(t, err)
	require.Equal(t, nfisch, total)
	require.Equal(t, nfisch/2, passed)
	require.True(t, ok, "count*2 == t must still accept; the threshold is inclusive")

	short := degrade(nfisch/2 + 1)
	ok, passed, total, err = VerifyDetailed(ts, com, pk, len(data), short, params)
	require.NoError(t, err)
	require.Equal(t, nfisch/2-1, passed)
	require.False(t, ok, "fewer than half valid must reject")
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	ts, err := commitment.NewTrustedSetup(32, [32]byte{2})
	require.NoError(t, err)

	sk, err := curve.RandomScalar()
	require.NoError(t, err)

	data := make([]byte, 128)
	params := Params{NFisch: 4, Difficulty: 2, M: 8}

	proof, com, err := Prove(ts, sk, data, params)
	require.NoError(t, err)

	other, err := curve.RandomScalar()
	require.NoError(t, err)
	wrongPk := curve.MulG1(other)

	ok, err := Verify(ts, com, wrongPk, len(data), proof, params)
	require.NoError(t, err)
	require.False(t, ok, "verification against the wrong public key must fail")
}
