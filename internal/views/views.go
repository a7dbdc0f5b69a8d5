// Package views holds the page controllers. A controller keeps the state a
// page shows and exposes its user actions as methods; adapters render the
// state and call the methods.
package views

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/services"
	"lumincoin/internal/session"
)

// Navigator opens an in-app route.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// SessionStore is the part of session.Store the controllers use.
type SessionStore interface {
	AccessToken(ctx context.Context) string
	Get(ctx context.Context, key session.Key) (string, error)
	Write(ctx context.Context, accessToken, refreshToken string, user *core.User) error
	Clear(ctx context.Context) error
}

type Deps struct {
	Nav        Navigator
	Alert      Alerter
	Session    SessionStore
	Messages   services.Messages
	Auth       *services.Auth
	Balance    *services.Balance
	Income     *services.Categories
	Expense    *services.Categories
	Operations *services.Operations
	Logger     *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Categories returns the category service of kind.
func (d Deps) Categories(kind core.Kind) *services.Categories {
	if kind == core.Income {
		return d.Income
	}
	return d.Expense
}

type base struct {
	Deps
}

func newBase(d Deps) base {
	if d.Logger == nil {
		d.Logger = log.Default(log.ComponentView)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return base{Deps: d}
}

func (b base) t(id string) string {
	if b.Messages == nil {
		return id
	}
	return b.Messages.T(id)
}

func (b base) open(ctx context.Context, target string) error {
	return b.Nav.Navigate(ctx, target)
}

func (b base) signedIn(ctx context.Context) bool {
	return b.Session.AccessToken(ctx) != ""
}

// requireSession sends anonymous users to the login page. It reports
// whether the page may continue.
func (b base) requireSession(ctx context.Context) (bool, error) {
	if b.signedIn(ctx) {
		return true, nil
	}
	return false, b.open(ctx, "/login")
}

// failed alerts err and follows the redirect that came with it.
func (b base) failed(ctx context.Context, err, redirect string) error {
	b.Alert.Alert(err)
	if redirect != "" {
		return b.open(ctx, redirect)
	}
	return nil
}

// queryID reads a positive numeric id from the query.
func queryID(q url.Values) (int, bool) {
	id, err := strconv.Atoi(q.Get("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
