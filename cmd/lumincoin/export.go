package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/sheets/memory"
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Append operations of a period to a Google Sheet",
		Long: `Append the operations of a period to the configured Google Sheet.

Requires GOOGLE_SPREADSHEET_ID and service account credentials
(GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
GOOGLE_APPLICATION_CREDENTIALS). With --dry-run the rows are printed instead.`,
		Args: cobra.NoArgs,
		RunE: run(runExport),
	}
	addFilterFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Print the rows instead of writing them")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	f, err := readFilter(cmd, rt)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	exporter, err := rt.Exporter(ctx, dryRun)
	if err != nil {
		return err
	}

	res := rt.Deps.Operations.List(ctx, f)
	if err := resultErr(res); err != nil {
		return err
	}
	if len(res.Value) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to export")
		return nil
	}

	ref, err := exporter.Export(ctx, res.Value)
	if err != nil {
		return fmt.Errorf("export operations: %w", err)
	}

	if store, ok := exporter.(*memory.Store); ok {
		rows := store.Rows()
		header := make([]string, len(rows[0]))
		for i, c := range rows[0] {
			header[i] = fmt.Sprint(c)
		}
		body := make([][]string, 0, len(rows)-1)
		for _, r := range rows[1:] {
			line := make([]string, len(r))
			for i, c := range r {
				line[i] = fmt.Sprint(c)
			}
			body = append(body, line)
		}
		return writeTable(cmd.OutOrStdout(), header, body)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d operations to %s\n", len(res.Value), ref)
	return nil
}
