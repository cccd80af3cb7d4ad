package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmistrz/beholders/pkg/commitment"
)

func newSetupCmd() *cobra.Command {
	var secrets uint64

	cmd := &cobra.Command{
		Use:   "setup <output>",
		Short: "Generate a trusted setup with the given number of secrets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed [32]byte
			if _, err := rand.Read(seed[:]); err != nil {
				return fmt.Errorf("draw setup seed: %w", err)
			}

			ts, err := commitment.NewTrustedSetup(secrets, seed)
			if err != nil {
				return fmt.Errorf("generate trusted setup: %w", err)
			}

			data, err := ts.Bytes()
			if err != nil {
				return fmt.Errorf("serialize trusted setup: %w", err)
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write trusted setup: %w", err)
			}

			logger.Info().Str("output", args[0]).Uint64("secrets", secrets).Msg("setup complete")
			return nil
		},
	}

	cmd.Flags().Uint64Var(&secrets, "secrets", 16, "number of powers of tau in the trusted setup")

	return cmd
}
