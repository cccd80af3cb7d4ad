// Package hashing implements the transcript-binding primitives used by the
// Fischlin proof-of-work search: a raw SHA-512 block compression call
// (never the full, padded SHA-512), the prelude that binds the Schnorr
// commitments into a single transcript, and the per-opening hash mixed
// into the proof-of-work test.
//
// The standard library's crypto/sha512 does not expose its compression
// step, so it is reimplemented here directly over the published SHA-512
// round constants and message schedule (FIPS 180-4 §6.4). This is the one
// package in the module built on raw stdlib primitives rather than a
// pack dependency; see DESIGN.md for why no example repo could supply it.
package hashing

import (
	"crypto/sha512"
	"encoding/binary"
)

// State is the 8x64-bit SHA-512 chaining value.
type State [8]uint64

// BlockSize is the SHA-512 compression function's input block size in bytes.
const BlockSize = 128

// Compress512 runs one SHA-512 compression step over a 128-byte block,
// starting from state, and returns the updated state. It performs no
// padding and no length suffix: callers own framing entirely.
func Compress512(state State, block *[BlockSize]byte) State {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(block[i*8 : i*8+8])
	}
	for i := 16; i < 80; i++ {
		v1 := w[i-2]
		s1 := rotr(v1, 19) ^ rotr(v1, 61) ^ (v1 >> 6)
		v2 := w[i-15]
		s0 := rotr(v2, 1) ^ rotr(v2, 8) ^ (v2 >> 7)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for i := 0; i < 80; i++ {
		s1 := rotr(e, 14) ^ rotr(e, 18) ^ rotr(e, 41)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k512[i] + w[i]
		s0 := rotr(a, 28) ^ rotr(a, 34) ^ rotr(a, 39)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	return State{
		state[0] + a, state[1] + b, state[2] + c, state[3] + d,
		state[4] + e, state[5] + f, state[6] + g, state[7] + h,
	}
}

func rotr(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}

// k512 are the SHA-512 round constants (first 64 bits of the fractional
// parts of the cube roots of the first 80 primes), per FIPS 180-4.
var k512 = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// DeriveIndices maps (fischIter, c, m, dataLen) to m indices in [0, dataLen),
// deterministically, per the wire layout fixed by §4.B: fischIter as an
// LE u64 in bytes 0..8, c as an LE u32 in bytes 8..12, the rest zero.
func DeriveIndices(fischIter uint64, c uint32, m int, dataLen int) []int {
	if dataLen > 1<<16 {
		panic("hashing: data_len exceeds 2^16")
	}
	if m > 32 {
		panic("hashing: m exceeds 32")
	}

	var block [BlockSize]byte
	binary.LittleEndian.PutUint64(block[0:8], fischIter)
	binary.LittleEndian.PutUint32(block[8:12], c)

	state := Compress512(State{}, &block)

	raw := stateBytes(state)
	out := make([]int, m)
	for i := 0; i < m; i++ {
		u16 := binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
		out[i] = int(u16) % dataLen
	}
	return out
}

// Prelude binds the public key, commitment, and every Schnorr commitment
// a_i into a single transcript via full SHA-512 (this is the one place
// full SHA-512, not the raw compression function, is used, per §4.B).
func Prelude(pkBytes, comBytes []byte, aBytes [][]byte) State {
	h := sha512.New()
	h.Write(pkBytes)
	h.Write(comBytes)
	for _, a := range aBytes {
		h.Write(a)
	}
	sum := h.Sum(nil)

	var state State
	for i := range state {
		state[i] = binary.BigEndian.Uint64(sum[i*8 : i*8+8])
	}
	return state
}

// IndividualHash mixes one challenged opening into the transcript, per the
// §4.B block layout, starting compression from prelude (not the SHA-512 IV).
func IndividualHash(prelude State, schnorrC uint32, schnorrZ []byte, fischIter uint64, k int, val []byte, openingBytes []byte) State {
	if fischIter >= 1<<16 {
		panic("hashing: fisch_iter must be < 2^16")
	}
	if k < 0 || k > 255 {
		panic("hashing: k out of range for a single byte")
	}

	var block [BlockSize]byte
	copy(block[0:48], openingBytes)
	binary.LittleEndian.PutUint32(block[48:52], schnorrC)
	copy(block[80:112], schnorrZ)
	copy(block[112:120], val[:8])
	block[120] = byte(k)
	binary.LittleEndian.PutUint16(block[121:123], uint16(fischIter))

	return Compress512(prelude, &block)
}

// PowPass returns whether h's first word has at least difficulty trailing
// zero bits. difficulty must be <= 64.
func PowPass(h State, difficulty uint) bool {
	if difficulty > 64 {
		panic("hashing: difficulty exceeds 64")
	}
	return trailingZeros64(h[0]) >= difficulty
}

// XOR combines two states position-wise, used to fold per-opening hashes.
func XOR(a, b State) State {
	var out State
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func stateBytes(s State) [64]byte {
	var out [64]byte
	for i, w := range s {
		binary.LittleEndian.PutUint64(out[i*8:i*8+8], w)
	}
	return out
}

func trailingZeros64(x uint64) uint {
	if x == 0 {
		return 64
	}
	var n uint
	for x&1 == 0 {
		n++
		x >>= 1
	}
	return n
}
