package app

import (
	"context"
	"encoding/json"
	"testing"

	"lumincoin/internal/api"
	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/router"
	"lumincoin/internal/services"
	"lumincoin/internal/session"
	"lumincoin/internal/views"
	"lumincoin/web"
)

type backend map[string]string

func (b backend) Request(_ context.Context, path, method string, _ bool, _ any) api.Result {
	if body, ok := b[method+" "+path]; ok {
		return api.Result{Status: 200, Body: json.RawMessage(body)}
	}
	return api.Result{Error: true, Status: 404, Body: json.RawMessage(`{"error":true}`)}
}

type alerts []string

func (a *alerts) Alert(msg string) { *a = append(*a, msg) }

type fixture struct {
	app   *App
	doc   *router.MemoryDocument
	store *session.Store
	alert *alerts
}

func newFixture(t *testing.T, start string, b backend) *fixture {
	t.Helper()
	log.SetDefault(log.Discard())

	f := &fixture{
		doc:   router.NewMemoryDocument(),
		store: session.NewStore(session.NewMemoryBackend()),
		alert: &alerts{},
	}
	sd := services.Deps{Client: b, Logger: log.Discard()}
	deps := views.Deps{
		Alert:      f.alert,
		Session:    f.store,
		Auth:       services.NewAuth(sd),
		Balance:    services.NewBalance(sd),
		Income:     services.NewCategories(core.Income, sd),
		Expense:    services.NewCategories(core.Expense, sd),
		Operations: services.NewOperations(sd),
		Logger:     log.Discard(),
	}
	a, err := New(Config{
		Document: f.doc,
		History:  router.NewMemoryHistory(start),
		Fetcher:  router.NewFSFetcher(web.TemplatesFS),
		Profile:  f.store,
	}, deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.app = a
	return f
}

func TestRouteTable(t *testing.T) {
	f := newFixture(t, "/", backend{})
	want := map[string]router.Kind{
		"/":                  router.KindLayoutPage,
		"/login":             router.KindPage,
		"/sign-up":           router.KindPage,
		"/logout":            router.KindAction,
		"/income":            router.KindLayoutPage,
		"/income/create":     router.KindLayoutPage,
		"/income/edit":       router.KindLayoutPage,
		"/income/delete":     router.KindAction,
		"/expense":           router.KindLayoutPage,
		"/expense/create":    router.KindLayoutPage,
		"/expense/edit":      router.KindLayoutPage,
		"/expense/delete":    router.KindAction,
		"/operations":        router.KindLayoutPage,
		"/operations/create": router.KindLayoutPage,
		"/operations/edit":   router.KindLayoutPage,
		"/operations/delete": router.KindAction,
	}

	reg, err := router.NewRegistry(f.app.routes()...)
	if err != nil {
		t.Fatal(err)
	}
	routes := reg.Routes()
	if len(routes) != len(want) {
		t.Errorf("routes = %d, want %d", len(routes), len(want))
	}
	for _, r := range routes {
		kind, ok := want[r.Path]
		if !ok {
			t.Errorf("unexpected route %s", r.Path)
			continue
		}
		if r.Kind != kind {
			t.Errorf("%s kind = %v, want %v", r.Path, r.Kind, kind)
		}
		if r.Template != "" {
			if _, err := router.NewFSFetcher(web.TemplatesFS).Fetch(context.Background(), r.Template); err != nil {
				t.Errorf("%s template: %v", r.Path, err)
			}
		}
	}

	dash, _ := reg.Lookup("/")
	if len(dash.Scripts) != 5 || dash.Scripts[4] != "chart.umd.js" || len(dash.Styles) != 2 {
		t.Errorf("dashboard resources = %v %v", dash.Scripts, dash.Styles)
	}
	ops, _ := reg.Lookup("/operations")
	if len(ops.Scripts) != 4 || len(ops.Styles) != 2 {
		t.Errorf("operations resources = %v %v", ops.Scripts, ops.Styles)
	}
}

func TestAnonymousStartShowsLogin(t *testing.T) {
	f := newFixture(t, "/", backend{})
	if err := f.app.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if f.app.Path() != "/login" {
		t.Errorf("Path() = %q", f.app.Path())
	}
	if _, ok := f.app.Active().(*views.Login); !ok {
		t.Errorf("Active() = %T, want *views.Login", f.app.Active())
	}
	if len(f.doc.Scripts) != 0 || len(f.doc.Styles) != 0 {
		t.Errorf("dashboard resources left: %v %v", f.doc.Scripts, f.doc.Styles)
	}
	if f.doc.Title != "Авторизация | Lumincoin Finance" {
		t.Errorf("Title = %q", f.doc.Title)
	}
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/login", backend{
		"POST /login":                  `{"tokens":{"accessToken":"a","refreshToken":"r"},"user":{"id":3,"name":"Иван","lastName":"Петров"}}`,
		"GET /balance":                 `{"balance":320}`,
		"GET /operations?period=today": `[]`,
		"GET /categories/income":       `[{"id":1,"title":"Зарплата"}]`,
		"DELETE /categories/income/1":  `{"error":false}`,
	})
	if err := f.app.Start(ctx); err != nil {
		t.Fatal(err)
	}

	login, ok := f.app.Active().(*views.Login)
	if !ok {
		t.Fatalf("Active() = %T", f.app.Active())
	}
	login.Email.Value = "ivan@mail.ru"
	login.Password.Value = "Secret123"
	if err := login.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	if _, ok := f.app.Active().(*views.Dashboard); !ok {
		t.Fatalf("Active() = %T, want *views.Dashboard", f.app.Active())
	}
	layout, ok := f.app.Layout().(*views.Layout)
	if !ok || layout.BalanceLabel != "320$" {
		t.Errorf("Layout() = %#v", f.app.Layout())
	}
	if f.doc.ProfileName != "Иван Петров" {
		t.Errorf("ProfileName = %q", f.doc.ProfileName)
	}
	if len(f.doc.Scripts) != 5 || len(f.doc.Styles) != 2 {
		t.Errorf("resources = %v %v", f.doc.Scripts, f.doc.Styles)
	}
	if !f.doc.Menu.IsActive("/") {
		t.Errorf("menu = %+v", f.doc.Menu)
	}

	nav, err := f.app.HandleClick(ctx, &router.Element{Tag: "a", Href: "/income"})
	if err != nil || !nav {
		t.Fatalf("HandleClick() = %v, %v", nav, err)
	}
	list, ok := f.app.Active().(*views.CategoryList)
	if !ok || len(list.Cards) != 1 {
		t.Fatalf("Active() = %#v", f.app.Active())
	}
	if len(f.doc.Scripts) != 0 || !f.doc.Menu.CategoriesExpanded {
		t.Errorf("scripts = %v, menu = %+v", f.doc.Scripts, f.doc.Menu)
	}

	list.AskDelete(1)
	if err := f.app.Navigate(ctx, list.Delete.ConfirmHref); err != nil {
		t.Fatal(err)
	}
	if f.app.Path() != "/income" {
		t.Errorf("Path() after delete = %q", f.app.Path())
	}
	if len(*f.alert) != 0 {
		t.Errorf("alerts = %v", *f.alert)
	}
}
