package fischlin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/hashing"
	"github.com/marmistrz/beholders/pkg/schnorr"
)

func TestProveVerifyScenario1(t *testing.T) {
	ts, err := NewTrustedSetupForTest(t, 16)
	require.NoError(t, err)

	fs := commitment.NewFFTSettings(4)
	data := make([]curve.Fr, 4)
	for i, v := range []uint64{4, 2137, 383, 4} {
		data[i].SetUint64(v)
	}

	com, openings, err := commitment.OpenAllFK20(ts, fs, data)
	require.NoError(t, err)

	var sk curve.Fr
	sk.SetUint64(2137)
	var r curve.Fr
	r.SetUint64(1337)

	params := Params{Difficulty: 4, M: 16}
	bp, ok := Prove(0, hashing.State{}, data, openings, r, sk, params)
	require.True(t, ok, "BaseProof::prove should return Some for this fixture")

	pk := curve.MulG1(sk)
	valid := Verify(ts, fs, com, pk, 0, hashing.State{}, len(data), bp, params)
	require.True(t, valid)
}

// TestVerifyRejectsOutOfBudgetChallenge confirms Verify's bounded-challenge
// check: a Schnorr.C at or above maxc(difficulty) must be rejected
// regardless of whether the rest of the transcript is otherwise valid, since
// a prover free to pick any c could otherwise skip the proof-of-work search
// entirely.
func TestVerifyRejectsOutOfBudgetChallenge(t *testing.T) {
	ts, err := NewTrustedSetupForTest(t, 16)
	require.NoError(t, err)

	fs := commitment.NewFFTSettings(4)
	data := make([]curve.Fr, 4)
	for i, v := range []uint64{4, 2137, 383, 4} {
		data[i].SetUint64(v)
	}

	com, openings, err := commitment.OpenAllFK20(ts, fs, data)
	require.NoError(t, err)

	var sk curve.Fr
	sk.SetUint64(2137)
	var r curve.Fr
	r.SetUint64(1337)

	params := Params{Difficulty: 4, M: 16}
	bp, ok := Prove(0, hashing.State{}, data, openings, r, sk, params)
	require.True(t, ok)

	// Replace the mined Schnorr transcript with one built from a challenge
	// at the budget boundary; Verify must reject on the maxc check before
	// ever reaching the proof-of-work test.
	bp.Schnorr = schnorr.Prove(sk, r, schnorr.MaxC(params.Difficulty))

	pk := curve.MulG1(sk)
	valid := Verify(ts, fs, com, pk, 0, hashing.State{}, len(data), bp, params)
	require.False(t, valid, "a challenge >= maxc(difficulty) must be rejected")
}

func NewTrustedSetupForTest(t *testing.T, secrets uint64) (*commitment.TrustedSetup, error) {
	t.Helper()
	return commitment.NewTrustedSetup(secrets, [32]byte{})
}
