package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRootCmd(wire wireFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ripplectl",
		Short:        "Operator tool for ripple-ai accounts",
		Long:         "ripplectl inspects entitlement decisions, adjusts free usage counters and issues local session tokens, using the same environment as the server.",
		SilenceUsage: true,
	}

	// with wires the app for a single command run and closes it afterwards.
	with := func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := wire(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.close(ctx) }()
			return run(cmd, a, args)
		}
	}

	rootCmd.AddCommand(
		newEntitlementCmd(with),
		newUsageCmd(with),
		newTokenCmd(with),
	)
	return rootCmd
}

type withApp func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error
