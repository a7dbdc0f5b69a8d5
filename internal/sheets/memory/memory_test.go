package memory

import (
	"context"
	"testing"

	"lumincoin/internal/core"
)

func TestStoreExport(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Export(ctx, []core.Operation{
		{ID: 1, Type: core.Income, Amount: core.Money{Cents: 1250}, Date: "2024-01-02", Category: "Зарплата"},
		{ID: 2, Type: core.Expense, Amount: core.Money{Cents: 300}, Date: "2024-01-03", Category: "Еда"},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if ref != "mem!A2:F3" {
		t.Errorf("ref = %q, want mem!A2:F3", ref)
	}

	ref, err = s.Export(ctx, []core.Operation{{ID: 3, Type: core.Expense}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if ref != "mem!A4:F4" {
		t.Errorf("ref = %q, want mem!A4:F4", ref)
	}

	rows := s.Rows()
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Errorf("header = %v", rows[0])
	}
	if got := rows[1][4]; got != 12.5 {
		t.Errorf("amount cell = %v, want 12.5", got)
	}
}
