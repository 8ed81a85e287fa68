package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errNoSigningKey = errors.New("token issuing needs IDENTITY_JWT_SECRET")

func newTokenCmd(with withApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue session tokens for local runs",
	}

	var ttl time.Duration
	issue := &cobra.Command{
		Use:   "issue <account-id>",
		Short: "Print a signed session token for the account",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, a *app, args []string) error {
			if a.verifier == nil {
				return errNoSigningKey
			}
			token, err := a.verifier.Sign(args[0], ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		}),
	}
	issue.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	cmd.AddCommand(issue)
	return cmd
}
