package services

import (
	"context"
	"net/http"
	"strconv"

	"lumincoin/internal/api"
	"lumincoin/internal/core"
	"lumincoin/internal/events"
	"lumincoin/internal/i18n"
	"lumincoin/internal/log"
)

type Operations struct {
	base
}

func NewOperations(d Deps) *Operations {
	return &Operations{base: newBase(d)}
}

func operationPath(id int) string {
	return "/operations/" + strconv.Itoa(id)
}

// List returns the operations for a filter. Interval dates are converted
// from DD.MM.YYYY and only sent when both are present.
func (o *Operations) List(ctx context.Context, f core.Filter) Result[[]core.Operation] {
	query, err := f.Query()
	if err != nil {
		o.logger.WarnContext(ctx, "Invalid operations filter", log.FieldPeriod, f.Period, log.FieldError, err)
		return fail[[]core.Operation](o.base, i18n.MsgOperationsList, api.Result{})
	}

	res := o.client.Request(ctx, "/operations?"+query, http.MethodGet, true, nil)
	if !accepted(res) {
		return fail[[]core.Operation](o.base, i18n.MsgOperationsList, res)
	}
	return decode[[]core.Operation](ctx, o.base, i18n.MsgOperationsList, res)
}

func (o *Operations) Get(ctx context.Context, id int) Result[core.Operation] {
	res := o.client.Request(ctx, operationPath(id), http.MethodGet, true, nil)
	if !accepted(res, "id") {
		return fail[core.Operation](o.base, i18n.MsgOperationsGet, res)
	}
	return decode[core.Operation](ctx, o.base, i18n.MsgOperationsGet, res)
}

func (o *Operations) Create(ctx context.Context, in core.OperationInput) Result[None] {
	res := o.client.Request(ctx, "/operations", http.MethodPost, true, in)
	if !accepted(res) {
		return fail[None](o.base, i18n.MsgOperationsCreate, res)
	}
	id := idOf(res.Body)
	o.logger.InfoContext(ctx, "Operation created", log.FieldKind, in.Type, log.FieldID, id)
	o.publish(ctx, events.NewLedgerEvent(events.EntityOperation, events.ActionCreated, in.Type, id))
	return Result[None]{}
}

func (o *Operations) Update(ctx context.Context, id int, in core.OperationInput) Result[None] {
	res := o.client.Request(ctx, operationPath(id), http.MethodPut, true, in)
	if !accepted(res, "id") {
		return fail[None](o.base, i18n.MsgOperationsUpdate, res)
	}
	o.publish(ctx, events.NewLedgerEvent(events.EntityOperation, events.ActionUpdated, in.Type, id))
	return Result[None]{}
}

func (o *Operations) Delete(ctx context.Context, id int) Result[None] {
	res := o.client.Request(ctx, operationPath(id), http.MethodDelete, true, nil)
	if !accepted(res) {
		return fail[None](o.base, i18n.MsgOperationsDelete, res)
	}
	o.logger.InfoContext(ctx, "Operation deleted", log.FieldID, id)
	o.publish(ctx, events.NewLedgerEvent(events.EntityOperation, events.ActionDeleted, "", id))
	return Result[None]{}
}
