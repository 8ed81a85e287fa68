package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

func newUsageCmd(with withApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Adjust free usage counters",
	}

	reset := &cobra.Command{
		Use:   "reset <account-id>",
		Short: "Set the free usage counter to 0",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, a *app, args []string) error {
			return setUsage(cmd, a, args[0], 0)
		}),
	}

	set := &cobra.Command{
		Use:   "set <account-id> <n>",
		Short: "Set the free usage counter to n",
		Args:  cobra.ExactArgs(2),
		RunE: with(func(cmd *cobra.Command, a *app, args []string) error {
			n, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid counter value %q: must be a non-negative integer", args[1])
			}
			return setUsage(cmd, a, args[0], n)
		}),
	}

	cmd.AddCommand(reset, set)
	return cmd
}

func setUsage(cmd *cobra.Command, a *app, accountID string, n int64) error {
	if err := a.store.UpdatePrivate(cmd.Context(), accountID, map[string]any{metadata.FreeUsageKey: n}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: free usage set to %d\n", accountID, n)
	return err
}
