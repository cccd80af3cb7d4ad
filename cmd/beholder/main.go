// Command beholder drives key generation, trusted-setup generation,
// proving, and verification for the Beholder signature scheme.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("beholder command failed")
		os.Exit(1)
	}
}
