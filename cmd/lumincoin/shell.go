package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"lumincoin/internal/app"
	"lumincoin/internal/cache"
	"lumincoin/internal/cli"
	"lumincoin/internal/log"
	"lumincoin/internal/router"
	"lumincoin/internal/shell"
)

func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse the client pages interactively",
		Long: `Start an interactive session that walks the same pages as the web client.

Type help for the list of commands. Pages are rendered as text; form
fields are filled with set and submitted with do, for example:

  set email ivan@mail.ru
  set password Secret123
  do Submit`,
		Args: cobra.NoArgs,
		RunE: run(runShell),
	}
	cmd.Flags().String("start", "/", "Route to open first")
	return cmd
}

func runShell(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	ctx, cancel := cli.SignalContext(ctx, rt.Logger)
	caches := cache.NewManager(rt.Logger.WithComponent(log.ComponentRouter))
	fetcher := rt.Fetcher(caches)
	caches.Start(ctx, time.Minute)
	defer func() {
		cancel()
		caches.Wait()
	}()

	start, _ := cmd.Flags().GetString("start")
	term := shell.NewTerminal(cmd.OutOrStdout())
	deps := rt.Deps
	deps.Alert = term

	a, err := app.New(app.Config{
		Document: term,
		History:  router.NewMemoryHistory(start),
		Fetcher:  fetcher,
		Profile:  rt.Session,
	}, deps)
	if err != nil {
		return err
	}

	return shell.New(a, term, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
}
