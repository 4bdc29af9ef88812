package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumenapi/internal/config"
	"resumenapi/internal/deliveryreport"
	"resumenapi/pkg/contracts"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, contracts.GetFullVersionString(config.AppName))
			fmt.Fprintf(out, "variants: %v (default %s)\n", deliveryreport.Variants, deliveryreport.DefaultVariant)
		},
	}
}
