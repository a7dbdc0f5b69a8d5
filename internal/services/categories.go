package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"lumincoin/internal/core"
	"lumincoin/internal/events"
	"lumincoin/internal/i18n"
	"lumincoin/internal/log"
)

// Categories manages the categories of one kind. Income and expense
// categories share the same endpoints under /categories/<kind>.
type Categories struct {
	base
	kind core.Kind
}

func NewCategories(kind core.Kind, d Deps) *Categories {
	return &Categories{base: newBase(d), kind: kind}
}

func (c *Categories) Kind() core.Kind {
	return c.kind
}

func (c *Categories) path(id ...int) string {
	p := "/categories/" + string(c.kind)
	if len(id) > 0 {
		p += "/" + strconv.Itoa(id[0])
	}
	return p
}

func (c *Categories) msg(op string) string {
	return i18n.CategoryMsg(string(c.kind), op)
}

func (c *Categories) List(ctx context.Context) Result[[]core.Category] {
	res := c.client.Request(ctx, c.path(), http.MethodGet, true, nil)
	if !accepted(res) {
		return fail[[]core.Category](c.base, c.msg(i18n.OpList), res)
	}
	return decode[[]core.Category](ctx, c.base, c.msg(i18n.OpList), res)
}

func (c *Categories) Get(ctx context.Context, id int) Result[core.Category] {
	res := c.client.Request(ctx, c.path(id), http.MethodGet, true, nil)
	if !accepted(res, "id", "title") {
		return fail[core.Category](c.base, c.msg(i18n.OpGet), res)
	}
	return decode[core.Category](ctx, c.base, c.msg(i18n.OpGet), res)
}

func (c *Categories) Create(ctx context.Context, title string) Result[core.Category] {
	res := c.client.Request(ctx, c.path(), http.MethodPost, true, map[string]string{"title": title})
	if !accepted(res, "id", "title") {
		return fail[core.Category](c.base, c.msg(i18n.OpCreate), res)
	}
	out := decode[core.Category](ctx, c.base, c.msg(i18n.OpCreate), res)
	if out.OK() {
		c.logger.InfoContext(ctx, "Category created", log.FieldKind, c.kind, log.FieldID, out.Value.ID)
		c.publish(ctx, events.NewLedgerEvent(events.EntityCategory, events.ActionCreated, c.kind, out.Value.ID))
	}
	return out
}

func (c *Categories) Update(ctx context.Context, id int, title string) Result[core.Category] {
	res := c.client.Request(ctx, c.path(id), http.MethodPut, true, map[string]string{"title": title})
	if !accepted(res, "id", "title") {
		return fail[core.Category](c.base, c.msg(i18n.OpUpdate), res)
	}
	out := decode[core.Category](ctx, c.base, c.msg(i18n.OpUpdate), res)
	if out.OK() {
		c.publish(ctx, events.NewLedgerEvent(events.EntityCategory, events.ActionUpdated, c.kind, id))
	}
	return out
}

func (c *Categories) Delete(ctx context.Context, id int) Result[None] {
	res := c.client.Request(ctx, c.path(id), http.MethodDelete, true, nil)
	if !accepted(res) {
		return fail[None](c.base, c.msg(i18n.OpDelete), res)
	}
	c.logger.InfoContext(ctx, "Category deleted", log.FieldKind, c.kind, log.FieldID, id)
	c.publish(ctx, events.NewLedgerEvent(events.EntityCategory, events.ActionDeleted, c.kind, id))
	return Result[None]{}
}

// FindByTitle returns the id of the category with the given title.
func FindByTitle(categories []core.Category, title string) (int, bool) {
	for _, c := range categories {
		if c.Title == title {
			return c.ID, true
		}
	}
	return 0, false
}

// idOf reads a numeric "id" from a response body, 0 if absent.
func idOf(body []byte) int {
	return int(gjson.GetBytes(body, "id").Int())
}
