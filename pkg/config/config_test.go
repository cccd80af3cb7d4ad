package config

import "testing"

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	p, err := Load("/nonexistent/path/profile.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", p)
	}
}

func TestDefaultDifficultyBalanced(t *testing.T) {
	got := DefaultDifficultyBalanced(4, 4) // log2(4)=2 both sides, net 5
	if got != 5 {
		t.Fatalf("DefaultDifficultyBalanced(4,4) = %d, want 5", got)
	}
}

func TestDefaultDifficultyLog2N(t *testing.T) {
	if DefaultDifficultyLog2N(8) != 3 {
		t.Fatalf("DefaultDifficultyLog2N(8) = %d, want 3", DefaultDifficultyLog2N(8))
	}
}
