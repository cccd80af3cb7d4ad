package commitment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmistrz/beholders/pkg/curve"
)

func TestOpenAllFK20OpeningsVerify(t *testing.T) {
	ts, err := NewTrustedSetup(16, [32]byte{})
	require.NoError(t, err)

	fs := NewFFTSettings(4)
	data := make([]curve.Fr, 4)
	for i, v := range []uint64{4, 2137, 383, 4} {
		data[i].SetUint64(v)
	}

	com, openings, err := OpenAllFK20(ts, fs, data)
	require.NoError(t, err)
	require.Len(t, openings, 4)

	for i := 0; i < 4; i++ {
		point := fs.GetPoint(uint64(i))
		ok := CheckProofSingle(ts, com, openings[i], point, data[i])
		require.True(t, ok, "opening %d must verify", i)
	}
}

// TestOpenAllFK20MatchesNaiveOpening is the spec's testable property 3:
// FK20's batched openings must agree, point for point, with the naive
// single-point KZG opening computed independently for each index — not
// merely both pass the pairing check, which a wrong-but-self-consistent
// implementation could also satisfy.
func TestOpenAllFK20MatchesNaiveOpening(t *testing.T) {
	ts, err := NewTrustedSetup(16, [32]byte{})
	require.NoError(t, err)

	fs := NewFFTSettings(4)
	data := make([]curve.Fr, 4)
	for i, v := range []uint64{4, 2137, 383, 4} {
		data[i].SetUint64(v)
	}

	_, openings, err := OpenAllFK20(ts, fs, data)
	require.NoError(t, err)
	require.Len(t, openings, 4)

	poly := Interpolate(fs, data)
	for i := 0; i < 4; i++ {
		point := fs.GetPoint(uint64(i))
		naive, err := ComputeProofSingle(ts, poly, point)
		require.NoError(t, err)
		require.True(t, naive.H.Equal(&openings[i].H), "opening %d: FK20 output disagrees with the naive single-point opening", i)
	}
}

func TestGetPointDeterministic(t *testing.T) {
	fs := NewFFTSettings(8)
	a := fs.GetPoint(3)
	b := fs.GetPoint(3)
	require.True(t, a.Equal(&b))
}
