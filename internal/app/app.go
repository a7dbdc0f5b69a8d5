// Package app wires the route table of the client to its page controllers.
package app

import (
	"context"

	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/router"
	"lumincoin/internal/views"
)

// LayoutTemplate is the shell shared by every signed-in page.
const LayoutTemplate = "/templates/layout.html"

var (
	datePickerScripts = []string{
		"jquery.min.js",
		"moment.js",
		"moment-ru-locale.js",
		"tempusdominus-bootstrap-4.min.js",
	}
	datePickerStyles = []string{
		"all.min.css",
		"tempusdominus-bootstrap-4.min.css",
	}
)

// App is the router bound to the page controllers. It is the Navigator the
// controllers use.
type App struct {
	*router.Router
	deps   views.Deps
	logger *log.Logger
}

// Config carries the collaborators of the router.
type Config struct {
	Document router.Document
	History  router.History
	Fetcher  router.Fetcher
	Profile  router.Profile
	Origin   string
}

// New builds the route table. deps.Nav is replaced by the app itself.
func New(cfg Config, deps views.Deps) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default(log.ComponentView)
	}
	a := &App{logger: log.Default(log.ComponentApp)}
	deps.Nav = a
	a.deps = deps

	reg, err := router.NewRegistry(a.routes()...)
	if err != nil {
		return nil, err
	}
	opts := []router.Option{
		router.WithLayout(mount(a, "layout", func(ctx context.Context) (*views.Layout, error) {
			return views.NewLayout(ctx, a.deps)
		})),
		router.WithOrigin(cfg.Origin),
		router.WithLogger(log.Default(log.ComponentRouter)),
	}
	if cfg.Profile != nil {
		opts = append(opts, router.WithProfile(cfg.Profile))
	}
	a.Router = router.New(reg, cfg.Document, cfg.History, cfg.Fetcher, opts...)
	return a, nil
}

func (a *App) routes() []router.Route {
	routes := []router.Route{
		router.LayoutPage("/", "Главная", "/templates/pages/dashboard.html", LayoutTemplate,
			mount(a, "/", func(ctx context.Context) (*views.Dashboard, error) {
				return views.NewDashboard(ctx, a.deps)
			})).
			WithScripts(append(datePickerScripts, "chart.umd.js")...).
			WithStyles(datePickerStyles...),
		router.Page("/login", "Авторизация", "/templates/pages/auth/login.html",
			mount(a, "/login", func(ctx context.Context) (*views.Login, error) {
				return views.NewLogin(ctx, a.deps)
			})),
		router.Page("/sign-up", "Регистрация", "/templates/pages/auth/sign-up.html",
			mount(a, "/sign-up", func(ctx context.Context) (*views.Signup, error) {
				return views.NewSignup(ctx, a.deps)
			})),
		router.Action("/logout", action(a, "/logout", func(ctx context.Context) error {
			return views.Logout(ctx, a.deps)
		})),
	}

	routes = append(routes, a.categoryRoutes(core.Income, "Доходы", "доходов")...)
	routes = append(routes, a.categoryRoutes(core.Expense, "Расходы", "расходов")...)

	return append(routes,
		router.LayoutPage("/operations", "Доходы и расходы", "/templates/pages/operations/list.html", LayoutTemplate,
			mount(a, "/operations", func(ctx context.Context) (*views.OperationsList, error) {
				return views.NewOperationsList(ctx, a.deps)
			})).
			WithScripts(datePickerScripts...).
			WithStyles(datePickerStyles...),
		router.LayoutPage("/operations/create", "Доходы и расходы", "/templates/pages/operations/create.html", LayoutTemplate,
			mount(a, "/operations/create", func(ctx context.Context) (*views.OperationCreate, error) {
				return views.NewOperationCreate(ctx, a.deps, a.Query())
			})),
		router.LayoutPage("/operations/edit", "Доходы и расходы", "/templates/pages/operations/edit.html", LayoutTemplate,
			mount(a, "/operations/edit", func(ctx context.Context) (*views.OperationEdit, error) {
				return views.NewOperationEdit(ctx, a.deps, a.Query())
			})),
		router.Action("/operations/delete", action(a, "/operations/delete", func(ctx context.Context) error {
			return views.DeleteOperation(ctx, a.deps, a.Query())
		})),
	)
}

// categoryRoutes returns the list, create, edit and delete routes of kind.
// plural names the kind in the list title, genitive in the form titles.
func (a *App) categoryRoutes(kind core.Kind, plural, genitive string) []router.Route {
	base := "/" + string(kind)
	tmpl := "/templates/pages/" + string(kind)

	return []router.Route{
		router.LayoutPage(base, plural, tmpl+"/list.html", LayoutTemplate,
			mount(a, base, func(ctx context.Context) (*views.CategoryList, error) {
				return views.NewCategoryList(ctx, a.deps, kind)
			})),
		router.LayoutPage(base+"/create", "Создание категории "+genitive, tmpl+"/create.html", LayoutTemplate,
			mount(a, base+"/create", func(ctx context.Context) (*views.CategoryCreate, error) {
				return views.NewCategoryCreate(ctx, a.deps, kind)
			})),
		router.LayoutPage(base+"/edit", "Редактирование категории "+genitive, tmpl+"/edit.html", LayoutTemplate,
			mount(a, base+"/edit", func(ctx context.Context) (*views.CategoryEdit, error) {
				return views.NewCategoryEdit(ctx, a.deps, kind, a.Query())
			})),
		router.Action(base+"/delete", action(a, base+"/delete", func(ctx context.Context) error {
			return views.DeleteCategory(ctx, a.deps, kind, a.Query())
		})),
	}
}

// mount adapts a controller constructor to a route callback. A nil
// controller means the constructor navigated elsewhere.
func mount[T any](a *App, route string, build func(ctx context.Context) (*T, error)) router.Mount {
	return func(ctx context.Context) any {
		v, err := build(ctx)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to mount view", log.FieldRoute, route, log.FieldError, err)
		}
		if v == nil {
			return nil
		}
		return v
	}
}

// action adapts an action route. Actions leave no view behind.
func action(a *App, route string, run func(ctx context.Context) error) router.Mount {
	return func(ctx context.Context) any {
		if err := run(ctx); err != nil {
			a.logger.ErrorContext(ctx, "Action failed", log.FieldRoute, route, log.FieldError, err)
		}
		return nil
	}
}
