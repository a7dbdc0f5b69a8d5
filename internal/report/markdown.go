// Package report renders ledger summaries as Markdown.
package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"lumincoin/internal/core"
)

// Labels are the localized strings used in the report.
type Labels struct {
	Title    string
	Period   string
	Income   string
	Expense  string
	Category string
	Amount   string
	Total    string
	NoData   string
}

// Dashboard is the data behind a dashboard report.
type Dashboard struct {
	Period  string
	Income  []core.CategoryAmount
	Expense []core.CategoryAmount
}

// NewDashboard groups operations by kind and category.
func NewDashboard(period string, ops []core.Operation) Dashboard {
	return Dashboard{
		Period:  period,
		Income:  core.SummarizeByCategory(ops, core.Income),
		Expense: core.SummarizeByCategory(ops, core.Expense),
	}
}

// WriteDashboard writes the dashboard as Markdown with a mermaid pie chart
// per non-empty section.
func WriteDashboard(w io.Writer, l Labels, d Dashboard) error {
	md := markdown.NewMarkdown(w)
	md.H1(l.Title)
	md.PlainText("")
	if d.Period != "" {
		md.PlainText(fmt.Sprintf("%s: %s", l.Period, d.Period))
		md.PlainText("")
	}

	writeSection(md, l, l.Income, d.Income)
	writeSection(md, l, l.Expense, d.Expense)

	if err := md.Build(); err != nil {
		return fmt.Errorf("build markdown: %w", err)
	}
	return nil
}

func writeSection(md *markdown.Markdown, l Labels, title string, items []core.CategoryAmount) {
	md.H2(title)
	md.PlainText("")

	if len(items) == 0 {
		md.PlainText(l.NoData)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(items)+1)
	for _, it := range items {
		rows = append(rows, []string{it.Name, it.Amount.String()})
	}
	rows = append(rows, []string{"**" + l.Total + "**", "**" + core.Total(items).String() + "**"})
	md.Table(markdown.TableSet{
		Header: []string{l.Category, l.Amount},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(title),
		piechart.WithShowData(true),
	)
	for _, it := range items {
		// Mermaid slices must be positive; refunds and rounding to zero are
		// left to the table.
		if it.Amount.Cents >= 100 {
			chart.LabelAndIntValue(it.Name, uint64(it.Amount.Cents/100))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
