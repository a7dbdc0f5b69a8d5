package main

import (
	"context"

	"github.com/spf13/cobra"

	"lumincoin/internal/cli"
	"lumincoin/internal/i18n"
	"lumincoin/internal/report"
)

func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print income and expense summaries as Markdown",
		Long: `Print the income and expense totals of a period grouped by category.

The output is Markdown with a table and a mermaid pie chart per ledger, ready
to paste into a README or a GitHub issue.`,
		Args: cobra.NoArgs,
		RunE: run(runDashboard),
	}
	addFilterFlags(cmd)
	return cmd
}

func runDashboard(ctx context.Context, cmd *cobra.Command, rt *cli.Runtime, _ []string) error {
	f, err := readFilter(cmd, rt)
	if err != nil {
		return err
	}
	res := rt.Deps.Operations.List(ctx, f)
	if err := resultErr(res); err != nil {
		return err
	}

	t := rt.Messages.T
	labels := report.Labels{
		Title:    t(i18n.MsgReportTitle),
		Period:   t(i18n.MsgReportPeriod),
		Income:   t(i18n.MsgChartIncome),
		Expense:  t(i18n.MsgChartExpense),
		Category: t(i18n.MsgReportCategory),
		Amount:   t(i18n.MsgReportAmount),
		Total:    t(i18n.MsgReportTotal),
		NoData:   t(i18n.MsgNoData),
	}
	return report.WriteDashboard(cmd.OutOrStdout(), labels, report.NewDashboard(describeFilter(f), res.Value))
}
