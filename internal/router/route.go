package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind tells how a route is rendered.
type Kind int

const (
	// KindLayoutPage renders its template inside the shared layout.
	KindLayoutPage Kind = iota + 1
	// KindPage renders its template as the whole page.
	KindPage
	// KindAction has no template or title; it only runs its mount callback.
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindLayoutPage:
		return "layout-page"
	case KindPage:
		return "page"
	case KindAction:
		return "action"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mount builds the view of a route once its page is in place. It may
// navigate elsewhere before returning.
type Mount func(ctx context.Context) any

// Route maps a path to a page. Scripts and styles are file names resolved
// under ScriptDir and StyleDir.
type Route struct {
	Path     string
	Kind     Kind
	Title    string
	Template string
	Layout   string
	Scripts  []string
	Styles   []string
	Mount    Mount
}

// LayoutPage returns a route rendered inside layout.
func LayoutPage(path, title, template, layout string, mount Mount) Route {
	return Route{Path: path, Kind: KindLayoutPage, Title: title, Template: template, Layout: layout, Mount: mount}
}

// Page returns a route rendered without a layout.
func Page(path, title, template string, mount Mount) Route {
	return Route{Path: path, Kind: KindPage, Title: title, Template: template, Mount: mount}
}

// Action returns a route that only runs mount.
func Action(path string, mount Mount) Route {
	return Route{Path: path, Kind: KindAction, Mount: mount}
}

// WithScripts returns a copy of r that loads scripts in order.
func (r Route) WithScripts(scripts ...string) Route {
	r.Scripts = append([]string(nil), scripts...)
	return r
}

// WithStyles returns a copy of r that attaches styles in order.
func (r Route) WithStyles(styles ...string) Route {
	r.Styles = append([]string(nil), styles...)
	return r
}

var ErrInvalidRoute = errors.New("invalid route")

func (r Route) validate() error {
	var problems []string
	if !strings.HasPrefix(r.Path, "/") {
		problems = append(problems, "path must start with /")
	}
	if strings.ContainsAny(r.Path, "?#") {
		problems = append(problems, "path must not contain a query or fragment")
	}
	if r.Mount == nil {
		problems = append(problems, "mount callback is required")
	}

	switch r.Kind {
	case KindLayoutPage:
		if r.Template == "" || r.Layout == "" {
			problems = append(problems, "layout page needs a template and a layout")
		}
	case KindPage:
		if r.Template == "" {
			problems = append(problems, "page needs a template")
		}
		if r.Layout != "" {
			problems = append(problems, "page must not have a layout")
		}
	case KindAction:
		if r.Template != "" || r.Layout != "" || r.Title != "" {
			problems = append(problems, "action must not have a template, layout or title")
		}
		if len(r.Scripts) > 0 || len(r.Styles) > 0 {
			problems = append(problems, "action must not load scripts or styles")
		}
	default:
		problems = append(problems, "unknown kind "+r.Kind.String())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidRoute, r.Path, strings.Join(problems, "; "))
	}
	return nil
}

// Registry is an immutable route table keyed by exact path.
type Registry struct {
	routes []Route
	byPath map[string]int
}

// NewRegistry validates every route and rejects duplicate paths. All
// problems are reported together.
func NewRegistry(routes ...Route) (*Registry, error) {
	reg := &Registry{byPath: make(map[string]int, len(routes))}
	var errs []error
	for _, r := range routes {
		if err := r.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := reg.byPath[r.Path]; dup {
			errs = append(errs, fmt.Errorf("%w %q: duplicate path", ErrInvalidRoute, r.Path))
			continue
		}
		reg.byPath[r.Path] = len(reg.routes)
		reg.routes = append(reg.routes, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Lookup matches path exactly. Callers strip the query first.
func (reg *Registry) Lookup(path string) (Route, bool) {
	i, ok := reg.byPath[path]
	if !ok {
		return Route{}, false
	}
	return reg.routes[i], true
}

// Routes returns the table in declaration order.
func (reg *Registry) Routes() []Route {
	return append([]Route(nil), reg.routes...)
}
