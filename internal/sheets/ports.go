package sheets

import (
	"context"

	"lumincoin/internal/core"
)

// Exporter appends ledger rows to a spreadsheet-like sink.
type Exporter interface {
	// Export appends one row per operation and returns a reference to the
	// written range.
	Export(ctx context.Context, ops []core.Operation) (ref string, err error)
}

// Header is the first row written to an empty sheet.
var Header = []any{"ID", "Date", "Type", "Category", "Amount", "Comment"}

// Row converts an operation into sheet cells. Dates are written as
// YYYY-MM-DD so USER_ENTERED parses them as dates.
func Row(op core.Operation) []any {
	return []any{op.ID, op.Date, string(op.Type), op.Category, op.Amount.Units(), op.Comment}
}

// Rows converts operations into sheet rows.
func Rows(ops []core.Operation) [][]any {
	out := make([][]any, 0, len(ops))
	for _, op := range ops {
		out = append(out, Row(op))
	}
	return out
}
