package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marmistrz/beholders/pkg/commitment"
	"github.com/marmistrz/beholders/pkg/config"
	"github.com/marmistrz/beholders/pkg/curve"
	"github.com/marmistrz/beholders/pkg/signature"
	"github.com/marmistrz/beholders/pkg/wire"
)

func newVerifyCmd() *cobra.Command {
	var setupFile, publicKeyPath, profilePath, metricsAddr string
	var nfisch, mvalue, dataLen int
	var difficulty uint
	var difficultySet bool

	cmd := &cobra.Command{
		Use:   "verify <commitment> <signature>",
		Short: "Verify a Beholder signature against a commitment and public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comPath, sigPath := args[0], args[1]

			reqLog := logger.With().Str("request_id", uuid.New().String()).Logger()

			profile, err := config.Load(profilePath)
			if err != nil {
				return err
			}
			if nfisch > 0 {
				profile.NFisch = nfisch
			}
			if mvalue > 0 {
				profile.MValue = mvalue
			}
			if difficultySet {
				profile.Difficulty = &difficulty
			}

			comBytes, err := os.ReadFile(comPath)
			if err != nil {
				return fmt.Errorf("read commitment: %w", err)
			}
			com, err := wire.DecodeCommitment(comBytes)
			if err != nil {
				return err
			}

			sigBytes, err := os.ReadFile(sigPath)
			if err != nil {
				return fmt.Errorf("read signature: %w", err)
			}
			proof, err := wire.DecodeProof(sigBytes)
			if err != nil {
				return err
			}

			pkBytes, err := os.ReadFile(publicKeyPath)
			if err != nil {
				return fmt.Errorf("read public key: %w", err)
			}
			pk, err := wire.DecodePublicKey(pkBytes)
			if err != nil {
				return err
			}

			setupBytes, err := os.ReadFile(setupFile)
			if err != nil {
				return fmt.Errorf("read trusted setup: %w", err)
			}
			ts, err := commitment.TrustedSetupFromBytes(setupBytes)
			if err != nil {
				return err
			}

			chunks := dataLen / int(curve.FrSize)
			if chunks == 0 {
				chunks = 1
			}
			params := signature.Params{
				NFisch:     profile.NFisch,
				M:          profile.MValue,
				Difficulty: profile.ResolveDifficulty(chunks),
			}

			m, stopMetrics := maybeStartMetricsServer(metricsAddr)
			defer stopMetrics()

			start := time.Now()
			ok, passed, total, err := signature.VerifyDetailed(ts, com, pk, dataLen, proof, params)
			if m != nil {
				observeDuration(m.VerifyDuration, start)
			}
			if err != nil {
				return fmt.Errorf("verify: %w", err)
			}

			reqLog.Info().Int("passed", passed).Int("total", total).Bool("accepted", ok).Msg("verify complete")
			fmt.Printf("Passed %d/%d Fischlin iterations\n", passed, total)

			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&setupFile, "setup-file", "", "trusted setup file")
	cmd.Flags().StringVar(&publicKeyPath, "public-key", "", "public key file")
	cmd.Flags().StringVar(&profilePath, "profile", "", "optional YAML profile supplying defaults")
	cmd.Flags().IntVar(&nfisch, "nfisch", 0, "number of Fischlin iterations (overrides profile)")
	cmd.Flags().IntVar(&mvalue, "mvalue", 0, "number of challenged positions per iteration (overrides profile)")
	cmd.Flags().UintVar(&difficulty, "bit-difficulty", 0, "proof-of-work difficulty in bits (overrides profile)")
	cmd.Flags().IntVar(&dataLen, "data-len", 0, "length in bytes of the original data")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus verify metrics on this address for the duration of the run")
	cmd.MarkFlagRequired("setup-file")
	cmd.MarkFlagRequired("public-key")
	cmd.MarkFlagRequired("data-len")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		difficultySet = cmd.Flags().Changed("bit-difficulty")
	}

	return cmd
}
