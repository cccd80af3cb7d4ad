package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/signature"
)

func TestProofRoundTrip(t *testing.T) {
	ts, err := commitment.NewTrustedSetup(32, [32]byte{3})
	require.NoError(t, err)

	sk, err := curve.RandomScalar()
	require.NoError(t, err)

	data := make([]byte, 128)
	params := signature.Params{NFisch: 4, Difficulty: 2, M: 8}

	proof, com, err := signature.Prove(ts, sk, data, params)
	require.NoError(t, err)

	encoded := EncodeProof(proof)
	decoded, err := DecodeProof(encoded)
	require.NoError(t, err)
	require.Equal(t, len(proof.FischIters), len(decoded.FischIters))

	reencoded := EncodeProof(decoded)
	require.Equal(t, encoded, reencoded, "round-trip must be bit-exact")

	encodedCom := EncodeCommitment(com)
	decodedCom, err := DecodeCommitment(encodedCom)
	require.NoError(t, err)
	require.Equal(t, com, decodedCom)
}

func TestSecretKeyRoundTrip(t *testing.T) {
	sk, err := curve.RandomScalar()
	require.NoError(t, err)

	b := EncodeSecretKey(sk)
	require.Len(t, b, curve.FrSize)

	got := DecodeSecretKey(b)
	require.True(t, got.Equal(&sk))
}

// TestSecretKeyWireFormatIsLittleEndian pins EncodeSecretKey/DecodeSecretKey
// to the spec's literal "Fr: 32 bytes (little-endian)" convention, not just
// to internal self-consistency: a scalar built from a known small integer
// must serialize with its least-significant byte first.
func TestSecretKeyWireFormatIsLittleEndian(t *testing.T) {
	var sk curve.Fr
	sk.SetUint64(2137) // spec section 8 scenario 1's sk value

	b := EncodeSecretKey(sk)
	require.Len(t, b, curve.FrSize)
	require.Equal(t, byte(2137&0xff), b[0])
	require.Equal(t, byte(2137>>8), b[1])
	for i := 2; i < curve.FrSize; i++ {
		require.Zero(t, b[i], "byte %d of Fr(2137) must be zero in little-endian encoding", i)
	}

	got := DecodeSecretKey(b)
	require.True(t, got.Equal(&sk))
}
