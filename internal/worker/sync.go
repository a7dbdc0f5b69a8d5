// Package worker turns ledger events into spreadsheet rows.
package worker

import (
	"context"
	"errors"
	"fmt"

	"lumincoin/internal/core"
	"lumincoin/internal/events"
	"lumincoin/internal/log"
	"lumincoin/internal/services"
	"lumincoin/internal/sheets"
)

// OperationGetter loads an operation by id.
type OperationGetter interface {
	Get(ctx context.Context, id int) services.Result[core.Operation]
}

// SyncWorker appends created and updated operations to a sheet.
type SyncWorker struct {
	operations OperationGetter
	exporter   sheets.Exporter
	logger     *log.Logger
}

func NewSyncWorker(operations OperationGetter, exporter sheets.Exporter, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Default(log.ComponentSheets)
	}
	return &SyncWorker{operations: operations, exporter: exporter, logger: logger}
}

// HandleEvent exports the operation an event refers to. Category events
// and deletions are acknowledged without work; a sheet is append-only.
func (w *SyncWorker) HandleEvent(ctx context.Context, e *events.LedgerEvent) error {
	if e.Entity != events.EntityOperation || e.Action == events.ActionDeleted {
		w.logger.DebugContext(ctx, "Skipping ledger event", "routing_key", e.RoutingKey())
		return nil
	}
	if e.ID <= 0 {
		w.logger.WarnContext(ctx, "Ledger event without operation id", "routing_key", e.RoutingKey())
		return nil
	}

	res := w.operations.Get(ctx, e.ID)
	if !res.OK() {
		return fmt.Errorf("get operation %d: %w", e.ID, errors.New(res.Err))
	}

	ref, err := w.exporter.Export(ctx, []core.Operation{res.Value})
	if err != nil {
		return fmt.Errorf("export operation %d: %w", e.ID, err)
	}

	w.logger.InfoContext(ctx, "Operation synced",
		log.FieldID, e.ID,
		"routing_key", e.RoutingKey(),
		"range", ref)
	return nil
}
