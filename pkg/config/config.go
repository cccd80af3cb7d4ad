// Package config loads per-deployment proving/verification profiles from
// YAML, in the style of the anchor configuration loader this module was
// adapted from: a single flat struct of settings and sane defaults for
// anything the file omits. No environment variables are consulted.
package config

import (
	"fmt"
	"math/bits"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the default nfisch/mvalue/difficulty a CLI run falls
// back to when the corresponding flag isn't set explicitly.
type Profile struct {
	NFisch     int    `yaml:"nfisch"`
	MValue     int    `yaml:"mvalue"`
	Difficulty *uint  `yaml:"difficulty,omitempty"`
	Name       string `yaml:"name"`
}

// DefaultProfile returns the module's built-in defaults: 64 iterations,
// m=16, and the balanced difficulty formula evaluated lazily per data size.
func DefaultProfile() Profile {
	return Profile{NFisch: 64, MValue: 16, Name: "default"}
}

// Load reads a YAML profile file; a missing file is not an error — the
// caller gets DefaultProfile() back so --profile stays optional.
func Load(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("config: read profile %q: %w", path, err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("config: parse profile %q: %w", path, err)
	}
	return profile, nil
}

// DefaultDifficultyBalanced implements `5 + log2(chunks) - log2(nfisch)`,
// the verifier-side default from the original implementation, balancing
// per-iteration proving cost against the number of iterations mined.
func DefaultDifficultyBalanced(chunks, nfisch int) uint {
	base := 5 + log2(chunks) - log2(nfisch)
	if base < 0 {
		return 0
	}
	return uint(base)
}

// DefaultDifficultyLog2N implements the prover-side alternative,
// `log2(chunks)` alone, offered as a named, explicit alternative rather
// than silently picked — the two formulas in the original sources
// disagreed and neither is authoritative on its own.
func DefaultDifficultyLog2N(chunks int) uint {
	return uint(log2(chunks))
}

func log2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// ResolveDifficulty returns p.Difficulty if set, else DefaultDifficultyBalanced.
func (p Profile) ResolveDifficulty(chunks int) uint {
	if p.Difficulty != nil {
		return *p.Difficulty
	}
	return DefaultDifficultyBalanced(chunks, p.NFisch)
}
