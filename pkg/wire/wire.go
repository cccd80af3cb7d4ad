// Package wire implements the canonical little-endian binary encoding for
// Beholder keys, commitments, and signatures (spec Component H): fixed
// widths for curve elements, little-endian uint32 length prefixes for
// variable-length vectors, and a leading discriminant byte for FischIter.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/fischlin"
	"github.com/marmistrz/beholders/pkg/schnorr"
	"github.com/marmistrz/beholders/pkg/signature"
)

const (
	tagCommitment byte = 0
	tagBaseProof  byte = 1
)

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readFull(r *bytes.Reader, b []byte) (int, error) {
	n := 0
	for n < len(b) {
		m, err := r.Read(b[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// encodeSchnorr writes a (G1Size bytes), c (LE u32), z (FrSize bytes).
func encodeSchnorr(buf *bytes.Buffer, s schnorr.Schnorr) {
	a := s.A.Bytes()
	buf.Write(a[:])
	writeU32(buf, s.C)
	z := curve.FrBytes(s.Z)
	buf.Write(z[:])
}

func decodeSchnorr(r *bytes.Reader) (schnorr.Schnorr, error) {
	var s schnorr.Schnorr

	aBytes := make([]byte, curve.G1Size)
	if _, err := readFull(r, aBytes); err != nil {
		return s, fmt.Errorf("wire: read schnorr.a: %w", err)
	}
	if _, err := s.A.SetBytes(aBytes); err != nil {
		return s, fmt.Errorf("wire: decode schnorr.a: %w", err)
	}

	c, err := readU32(r)
	if err != nil {
		return s, fmt.Errorf("wire: read schnorr.c: %w", err)
	}
	s.C = c

	zBytes := make([]byte, curve.FrSize)
	if _, err := readFull(r, zBytes); err != nil {
		return s, fmt.Errorf("wire: read schnorr.z: %w", err)
	}
	s.Z = curve.ScalarFromBytesModOrder(zBytes)

	return s, nil
}

// encodeBaseProof writes the Schnorr transcript, then length-prefixed
// data (Fr, 32 bytes each) and opening (G1, 48 bytes each) vectors.
func encodeBaseProof(buf *bytes.Buffer, bp fischlin.BaseProof) {
	encodeSchnorr(buf, bp.Schnorr)

	writeU32(buf, uint32(len(bp.Data)))
	for _, d := range bp.Data {
		b := curve.FrBytes(d)
		buf.Write(b[:])
	}

	writeU32(buf, uint32(len(bp.Openings)))
	for _, o := range bp.Openings {
		b := o.H.Bytes()
		buf.Write(b[:])
	}
}

func decodeBaseProof(r *bytes.Reader) (fischlin.BaseProof, error) {
	var bp fischlin.BaseProof

	s, err := decodeSchnorr(r)
	if err != nil {
		return bp, err
	}
	bp.Schnorr = s

	dataLen, err := readU32(r)
	if err != nil {
		return bp, fmt.Errorf("wire: read base_proof.data length: %w", err)
	}
	bp.Data = make([]curve.Fr, dataLen)
	for i := range bp.Data {
		b := make([]byte, curve.FrSize)
		if _, err := readFull(r, b); err != nil {
			return bp, fmt.Errorf("wire: read base_proof.data[%d]: %w", i, err)
		}
		bp.Data[i] = curve.ScalarFromBytesModOrder(b)
	}

	openingsLen, err := readU32(r)
	if err != nil {
		return bp, fmt.Errorf("wire: read base_proof.openings length: %w", err)
	}
	bp.Openings = make([]commitment.Opening, openingsLen)
	for i := range bp.Openings {
		b := make([]byte, curve.G1Size)
		if _, err := readFull(r, b); err != nil {
			return bp, fmt.Errorf("wire: read base_proof.openings[%d]: %w", i, err)
		}
		if _, err := bp.Openings[i].H.SetBytes(b); err != nil {
			return bp, fmt.Errorf("wire: decode base_proof.openings[%d]: %w", i, err)
		}
	}

	return bp, nil
}

// EncodeProof writes a length-prefixed sequence of tagged FischIter slots.
func EncodeProof(proof *signature.Proof) []byte {
	var buf bytes.Buffer
	writeU32(&buf, uint32(len(proof.FischIters)))
	for _, fi := range proof.FischIters {
		if fi.BaseProof != nil {
			buf.WriteByte(tagBaseProof)
			encodeBaseProof(&buf, *fi.BaseProof)
		} else {
			buf.WriteByte(tagCommitment)
			a := fi.A().Bytes()
			buf.Write(a[:])
		}
	}
	return buf.Bytes()
}

// DecodeProof parses the output of EncodeProof.
func DecodeProof(data []byte) (*signature.Proof, error) {
	r := bytes.NewReader(data)
	count, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("wire: read proof length: %w", err)
	}

	iters := make([]signature.FischIter, count)
	for i := range iters {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("wire: read fisch_iter[%d] tag: %w", i, err)
		}
		switch tag {
		case tagCommitment:
			b := make([]byte, curve.G1Size)
			if _, err := readFull(r, b); err != nil {
				return nil, fmt.Errorf("wire: read fisch_iter[%d] commitment: %w", i, err)
			}
			var a curve.G1
			if _, err := a.SetBytes(b); err != nil {
				return nil, fmt.Errorf("wire: decode fisch_iter[%d] commitment: %w", i, err)
			}
			iters[i] = signature.FischIter{Commitment: &a}
		case tagBaseProof:
			bp, err := decodeBaseProof(r)
			if err != nil {
				return nil, fmt.Errorf("wire: read fisch_iter[%d] base_proof: %w", i, err)
			}
			iters[i] = signature.FischIter{BaseProof: &bp}
		default:
			return nil, fmt.Errorf("wire: unknown fisch_iter tag %d at index %d", tag, i)
		}
	}

	return &signature.Proof{FischIters: iters}, nil
}

// EncodeCommitment/DecodeCommitment round-trip a bare KZG commitment point.
func EncodeCommitment(com commitment.Commitment) []byte {
	b := com.Bytes()
	return b[:]
}

func DecodeCommitment(data []byte) (commitment.Commitment, error) {
	var com commitment.Commitment
	if _, err := com.SetBytes(data); err != nil {
		return com, fmt.Errorf("wire: decode commitment: %w", err)
	}
	return com, nil
}

// EncodeSecretKey/DecodeSecretKey round-trip a raw Fr scalar.
func EncodeSecretKey(sk curve.Fr) []byte {
	b := curve.FrBytes(sk)
	return b[:]
}

func DecodeSecretKey(data []byte) curve.Fr {
	return curve.ScalarFromBytesModOrder(data)
}

// EncodePublicKey/DecodePublicKey round-trip a raw G1 point.
func EncodePublicKey(pk curve.G1) []byte {
	b := pk.Bytes()
	return b[:]
}

func DecodePublicKey(data []byte) (curve.G1, error) {
	var pk curve.G1
	if _, err := pk.SetBytes(data); err != nil {
		return pk, fmt.Errorf("wire: decode public key: %w", err)
	}
	return pk, nil
}
