// Package services wraps the backend endpoints used by the views. Every
// operation returns a Result carrying either a value or a localized error
// message plus an optional redirect; nothing is returned as a Go error.
package services

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"lumincoin/internal/api"
	"lumincoin/internal/events"
	"lumincoin/internal/log"
)

// Requester issues backend requests. *api.Client implements it.
type Requester interface {
	Request(ctx context.Context, path, method string, useAuth bool, body any) api.Result
}

// Messages resolves localized message IDs.
type Messages interface {
	T(id string) string
}

// Deps are shared by every service.
type Deps struct {
	Client   Requester
	Messages Messages
	// Events is optional; nil disables ledger events.
	Events events.Publisher
	Logger *log.Logger
}

// Result is the outcome of a service call. Err is empty on success.
type Result[T any] struct {
	Err      string
	Redirect string
	Value    T
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == ""
}

// None is the value of calls that return nothing.
type None struct{}

type base struct {
	client   Requester
	messages Messages
	events   events.Publisher
	logger   *log.Logger
}

func newBase(d Deps) base {
	logger := d.Logger
	if logger == nil {
		logger = log.Default(log.ComponentServices)
	}
	return base{client: d.Client, messages: d.Messages, events: d.Events, logger: logger}
}

func (b base) message(id string) string {
	if b.messages == nil {
		return id
	}
	return b.messages.T(id)
}

func fail[T any](b base, msgID string, res api.Result) Result[T] {
	return Result[T]{Err: b.message(msgID), Redirect: res.Redirect}
}

// accepted checks the envelope and the payload: no transport error, no
// redirect, a truthy body without an "error" flag, and every required path
// present and truthy.
func accepted(res api.Result, required ...string) bool {
	if res.Error || res.Redirect != "" || len(res.Body) == 0 {
		return false
	}
	parsed := gjson.ParseBytes(res.Body)
	if !api.Truthy(parsed) {
		return false
	}
	if parsed.IsObject() && api.Truthy(parsed.Get("error")) {
		return false
	}
	for _, path := range required {
		if !api.Truthy(parsed.Get(path)) {
			return false
		}
	}
	return true
}

// decode unmarshals an accepted body. A body that does not fit the target
// type is reported as a failure.
func decode[T any](ctx context.Context, b base, msgID string, res api.Result) Result[T] {
	var v T
	if err := json.Unmarshal(res.Body, &v); err != nil {
		b.logger.WarnContext(ctx, "Unexpected response shape", log.FieldError, err)
		return fail[T](b, msgID, res)
	}
	return Result[T]{Value: v}
}

func (b base) publish(ctx context.Context, e events.LedgerEvent) {
	if b.events == nil {
		b.logger.DebugContext(ctx, "Event publisher not configured, skipping ledger event", "routing_key", e.RoutingKey())
		return
	}
	if err := b.events.Publish(ctx, e); err != nil {
		// The change is already stored by the backend; the event is best effort.
		b.logger.WarnContext(ctx, "Failed to publish ledger event",
			"routing_key", e.RoutingKey(),
			log.FieldError, err)
	}
}
