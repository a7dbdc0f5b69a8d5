package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/core"
)

func NewBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
			res := rt.Deps.Balance.Get(ctx)
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s$\n", res.Value)
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Overwrite the balance",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, args []string) error {
			cents, err := core.ParseSignedDecimalToCents(args[0])
			if err != nil {
				return err
			}
			res := rt.Deps.Balance.Update(ctx, core.Money{Cents: cents})
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s$\n", res.Value)
			return nil
		}),
	})
	return cmd
}
