package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/events"
	"lumincoin/internal/log"
	"lumincoin/internal/worker"
)

func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print ledger change events from AMQP",
		Long: `Consume the ledger events published when categories and operations are
created, updated or deleted. Requires AMQP_URL. Stops on Ctrl-C.

With --sync every created or updated operation is appended to the
configured Google Sheet as well.`,
		Args: cobra.NoArgs,
		RunE: run(func(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
			if rt.Events == nil {
				return errors.New("events require a reachable AMQP_URL")
			}
			ctx, cancel := cli.SignalContext(ctx, rt.Logger)
			defer cancel()

			var syncer *worker.SyncWorker
			if enabled, _ := cmd.Flags().GetBool("sync"); enabled {
				exporter, err := rt.Exporter(ctx, false)
				if err != nil {
					return err
				}
				syncer = worker.NewSyncWorker(rt.Deps.Operations, exporter, rt.Logger.WithComponent(log.ComponentSheets))
			}

			err := rt.Events.Consume(ctx, func(e *events.LedgerEvent) error {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s kind=%s id=%d\n",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.RoutingKey(), e.Kind, e.ID); err != nil {
					return err
				}
				if syncer == nil {
					return nil
				}
				return syncer.HandleEvent(ctx, e)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}),
	}
	cmd.Flags().Bool("sync", false, "Append created and updated operations to Google Sheets")
	return cmd
}
