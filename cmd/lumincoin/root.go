package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lumincoin",
		Short: "Client for the Lumincoin Finance personal ledger",
		Long: `lumincoin manages a Lumincoin Finance account from the terminal.

It signs in against the Lumincoin Finance API, keeps the tokens in a local
session database and lets you work with the balance, income and expense
categories and operations. The dashboard command renders a Markdown summary
and export appends operations to a Google Sheet.

Configuration comes from the environment (.env is honoured) and from
$XDG_CONFIG_HOME/lumincoin/config.yaml or the file given with --config.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewBalanceCmd())
	cmd.AddCommand(NewCategoriesCmd())
	cmd.AddCommand(NewOperationsCmd())
	cmd.AddCommand(NewDashboardCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewEventsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
