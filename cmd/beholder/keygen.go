package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/wire"
)

func newKeygenCmd() *cobra.Command {
	var secretKeyPath, publicKeyPath string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Beholder secret/public key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := curve.RandomScalar()
			if err != nil {
				return fmt.Errorf("generate secret key: %w", err)
			}
			pk := curve.MulG1(sk)

			if err := os.WriteFile(secretKeyPath, wire.EncodeSecretKey(sk), 0o600); err != nil {
				return fmt.Errorf("write secret key: %w", err)
			}
			if err := os.WriteFile(publicKeyPath, wire.EncodePublicKey(pk), 0o644); err != nil {
				return fmt.Errorf("write public key: %w", err)
			}

			logger.Info().Str("secret_key", secretKeyPath).Str("public_key", publicKeyPath).Msg("keygen complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKeyPath, "secret-key", "", "output path for the secret key")
	cmd.Flags().StringVar(&publicKeyPath, "public-key", "", "output path for the public key")
	cmd.MarkFlagRequired("secret-key")
	cmd.MarkFlagRequired("public-key")

	return cmd
}
