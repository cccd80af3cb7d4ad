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

func newProveCmd() *cobra.Command {
	var setupFile, secretKeyPath, profilePath, metricsAddr string
	var nfisch, mvalue int
	var difficulty uint
	var difficultySet bool

	cmd := &cobra.Command{
		Use:   "prove <data> <commitment-out> <signature-out>",
		Short: "Produce a Beholder signature over the contents of a data file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath, comOutPath, sigOutPath := args[0], args[1], args[2]

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

			data, err := os.ReadFile(dataPath)
			if err != nil {
				return fmt.Errorf("read data file: %w", err)
			}

			skBytes, err := os.ReadFile(secretKeyPath)
			if err != nil {
				return fmt.Errorf("read secret key: %w", err)
			}
			sk := wire.DecodeSecretKey(skBytes)

			setupBytes, err := os.ReadFile(setupFile)
			if err != nil {
				return fmt.Errorf("read trusted setup: %w", err)
			}
			ts, err := commitment.TrustedSetupFromBytes(setupBytes)
			if err != nil {
				return err
			}

			chunks := len(data) / int(curve.FrSize)
			if chunks == 0 {
				chunks = 1
			}

			m, stopMetrics := maybeStartMetricsServer(metricsAddr)
			defer stopMetrics()

			params := signature.Params{
				NFisch:     profile.NFisch,
				M:          profile.MValue,
				Difficulty: profile.ResolveDifficulty(chunks),
			}
			if m != nil {
				params.Hooks = &signature.Hooks{
					OnAttempt: m.IterationsAttempted.Inc,
					OnSolved:  m.IterationsSolved.Inc,
					OnGivenUp: m.IterationsGivenUp.Inc,
				}
			}

			start := time.Now()
			proof, com, err := signature.Prove(ts, sk, data, params)
			if m != nil {
				observeDuration(m.ProveDuration, start)
			}
			if err != nil {
				return fmt.Errorf("prove: %w", err)
			}

			if err := os.WriteFile(comOutPath, wire.EncodeCommitment(com), 0o644); err != nil {
				return fmt.Errorf("write commitment: %w", err)
			}
			if err := os.WriteFile(sigOutPath, wire.EncodeProof(proof), 0o644); err != nil {
				return fmt.Errorf("write signature: %w", err)
			}

			reqLog.Info().Int("nfisch", params.NFisch).Int("m", params.M).Uint("difficulty", params.Difficulty).Msg("prove complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&setupFile, "setup-file", "", "trusted setup file")
	cmd.Flags().StringVar(&secretKeyPath, "secret-key", "", "secret key file")
	cmd.Flags().StringVar(&profilePath, "profile", "", "optional YAML profile supplying defaults")
	cmd.Flags().IntVar(&nfisch, "nfisch", 0, "number of Fischlin iterations (overrides profile)")
	cmd.Flags().IntVar(&mvalue, "mvalue", 0, "number of challenged positions per iteration (overrides profile)")
	cmd.Flags().UintVar(&difficulty, "bit-difficulty", 0, "proof-of-work difficulty in bits (overrides profile)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus mining metrics on this address for the duration of the run")
	cmd.MarkFlagRequired("setup-file")
	cmd.MarkFlagRequired("secret-key")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		difficultySet = cmd.Flags().Changed("bit-difficulty")
	}

	return cmd
}
