package curve

import (
	"testing"
)

func TestInit(t *testing.T) {
	Init()
	if G1Generator().IsInfinity() {
		t.Fatal("G1 generator must not be the point at infinity")
	}
}

func TestMulG1Identity(t *testing.T) {
	var one Fr
	one.SetOne()
	got := MulG1(one)
	want := G1Generator()
	if !got.Equal(&want) {
		t.Fatalf("1*G1 != G1 generator")
	}
}

func TestMulG1Additive(t *testing.T) {
	a, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	b, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	var sum Fr
	sum.Add(&a, &b)

	lhs := MulG1(sum)

	pa := MulG1(a)
	pb := MulG1(b)
	var accum G1
	accum.Add(&pa, &pb)
	if !lhs.Equal(&accum) {
		t.Fatalf("(a+b)*G1 != a*G1 + b*G1")
	}
}

func TestScalarFromBytesModOrderDeterministic(t *testing.T) {
	b := make([]byte, FrSize)
	b[0] = 0x42
	s1 := ScalarFromBytesModOrder(b)
	s2 := ScalarFromBytesModOrder(b)
	if !s1.Equal(&s2) {
		t.Fatal("ScalarFromBytesModOrder must be deterministic")
	}
}

// TestScalarFromBytesModOrderIsLittleEndian pins the byte-order convention
// demanded by the wire format: the least-significant byte of the integer
// value comes first, not last.
func TestScalarFromBytesModOrderIsLittleEndian(t *testing.T) {
	b := make([]byte, FrSize)
	b[0] = 137 // LE encoding of the small integer 137

	got := ScalarFromBytesModOrder(b)

	var want Fr
	want.SetUint64(137)
	if !got.Equal(&want) {
		t.Fatalf("ScalarFromBytesModOrder([137,0,...]) = %v, want Fr(137); byte order is not little-endian", got)
	}
}

// TestFrBytesRoundTripsWithScalarFromBytesModOrder confirms FrBytes is the
// exact inverse of ScalarFromBytesModOrder, and that it too uses
// little-endian order (the least-significant byte at index 0), matching
// spec's "Fr: 32 bytes (little-endian)" convention.
func TestFrBytesRoundTripsWithScalarFromBytesModOrder(t *testing.T) {
	var f Fr
	f.SetUint64(137)

	b := FrBytes(f)
	if b[0] != 137 {
		t.Fatalf("FrBytes(Fr(137))[0] = %d, want 137 (little-endian)", b[0])
	}
	for i := 1; i < FrSize; i++ {
		if b[i] != 0 {
			t.Fatalf("FrBytes(Fr(137))[%d] = %d, want 0", i, b[i])
		}
	}

	got := ScalarFromBytesModOrder(b[:])
	if !got.Equal(&f) {
		t.Fatal("ScalarFromBytesModOrder(FrBytes(f)) != f")
	}
}
