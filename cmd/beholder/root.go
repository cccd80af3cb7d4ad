package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "beholder",
		Short: "Generate and verify Beholder signatures (joint Schnorr + KZG, Fischlin-transformed)",
	}

	root.AddCommand(newKeygenCmd())
	root.AddCommand(newSetupCmd())
	root.AddCommand(newProveCmd())
	root.AddCommand(newVerifyCmd())

	return root
}
