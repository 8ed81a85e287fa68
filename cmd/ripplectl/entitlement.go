package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type decisionView struct {
	AccountID   string `json:"account_id"`
	Tier        string `json:"tier"`
	FreeUsage   int64  `json:"free_usage"`
	Limit       int64  `json:"limit"`
	Remaining   int64  `json:"remaining"`
	UsedPercent int    `json:"used_percent"` // -1 for premium
}

func newEntitlementCmd(with withApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entitlement",
		Short: "Inspect entitlement decisions",
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show <account-id>",
		Short: "Resolve and print the account's tier and usage",
		Long:  "Resolves the account exactly like a request would. A premium account with a non-zero counter is reset as a side effect.",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, a *app, args []string) error {
			d, err := a.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			info := a.gate.Usage(d)
			view := decisionView{
				AccountID:   args[0],
				Tier:        d.Tier.String(),
				FreeUsage:   d.RemainingFreeUsage,
				Limit:       info.Limit,
				Remaining:   a.gate.Remaining(d),
				UsedPercent: a.gate.UsagePercentage(d),
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			_, err = fmt.Fprintf(out, "account:    %s\ntier:       %s\nfree usage: %d\nlimit:      %d\nremaining:  %d\nused:       %d%%\n",
				view.AccountID, view.Tier, view.FreeUsage, view.Limit, view.Remaining, view.UsedPercent)
			return err
		}),
	}
	show.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	cmd.AddCommand(show)
	return cmd
}
