// Package router is a single-page router: it owns the route table and the
// history, swaps page fragments and mounts the scripts, styles and view of
// the matched route.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/atomic"

	"lumincoin/internal/core"
	"lumincoin/internal/log"
)

// Resource directories.
const (
	ScriptDir = "/js/"
	StyleDir  = "/css/"
)

// TitleSuffix is appended to every route title.
const TitleSuffix = " | Lumincoin Finance"

// voidHref marks links that only trigger in-page behavior.
const voidHref = "javascript:void(0)"

// errSuperseded stops an activation whose layout controller navigated away.
var errSuperseded = errors.New("activation superseded")

// Profile provides the signed-in user shown in the layout.
type Profile interface {
	User(ctx context.Context) (*core.User, error)
}

type Router struct {
	routes  *Registry
	doc     Document
	history History
	fetcher Fetcher
	profile Profile
	layout  Mount
	origin  string
	logger  *log.Logger

	// generation identifies the latest activation. Mount callbacks may
	// navigate, so an outer activation must not overwrite the view of a
	// nested one.
	generation atomic.Uint64

	mounted    *Route
	active     any
	layoutView any
}

type Option func(*Router)

// WithProfile sets the source of the layout profile name.
func WithProfile(p Profile) Option {
	return func(r *Router) { r.profile = p }
}

// WithLayout sets the controller mounted with every layout.
func WithLayout(m Mount) Option {
	return func(r *Router) { r.layout = m }
}

// WithOrigin sets the origin stripped from absolute link targets.
func WithOrigin(origin string) Option {
	return func(r *Router) { r.origin = strings.TrimSuffix(origin, "/") }
}

func WithLogger(l *log.Logger) Option {
	return func(r *Router) { r.logger = l }
}

func New(routes *Registry, doc Document, history History, fetcher Fetcher, opts ...Option) *Router {
	r := &Router{
		routes:  routes,
		doc:     doc,
		history: history,
		fetcher: fetcher,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default(log.ComponentRouter)
	}
	return r
}

// Start activates the route of the current history entry.
func (r *Router) Start(ctx context.Context) error {
	return r.Activate(ctx, "")
}

// Navigate pushes target and activates it. target may carry a query.
func (r *Router) Navigate(ctx context.Context, target string) error {
	previous := r.history.Path()
	r.history.Push(target)
	return r.Activate(ctx, previous)
}

// Back returns to the previous history entry. It reports false when there is
// none.
func (r *Router) Back(ctx context.Context) (bool, error) {
	previous := r.history.Path()
	if !r.history.Back() {
		return false, nil
	}
	return true, r.Activate(ctx, previous)
}

// Path is the current path.
func (r *Router) Path() string {
	return r.history.Path()
}

// Query is the query of the current entry.
func (r *Router) Query() url.Values {
	return r.history.Query()
}

// Active is the view mounted by the latest activation, nil if none.
func (r *Router) Active() any {
	return r.active
}

// Layout is the layout controller of the latest layout page.
func (r *Router) Layout() any {
	return r.layoutView
}

// Activate unmounts the current route and renders the route matching the
// current history path. An unknown path leaves the page as it is.
func (r *Router) Activate(ctx context.Context, previous string) error {
	gen := r.generation.Inc()
	r.unmount()

	path := r.history.Path()
	route, ok := r.routes.Lookup(path)
	if !ok {
		r.logger.WarnContext(ctx, "No route found", log.FieldRoute, path, log.FieldPrevious, previous)
		return nil
	}
	r.logger.DebugContext(ctx, "Activating route",
		log.FieldRoute, path,
		log.FieldPrevious, previous,
		log.FieldKind, route.Kind.String())

	r.mounted = &route
	for _, style := range route.Styles {
		r.doc.AttachStyle(StyleDir + style)
	}
	for _, script := range route.Scripts {
		if err := r.doc.LoadScript(ctx, ScriptDir+script); err != nil {
			r.deactivate()
			return fmt.Errorf("load script %s: %w", script, err)
		}
	}

	if route.Title != "" {
		r.doc.SetTitle(route.Title + TitleSuffix)
	}

	if route.Template != "" {
		err := r.render(ctx, route, gen)
		if errors.Is(err, errSuperseded) {
			return nil
		}
		if err != nil {
			r.deactivate()
			return err
		}
	}

	view := route.Mount(ctx)
	if r.generation.Load() == gen {
		r.active = view
	}
	return nil
}

func (r *Router) render(ctx context.Context, route Route, gen uint64) error {
	if route.Kind != KindLayoutPage {
		page, err := r.fetcher.Fetch(ctx, route.Template)
		if err != nil {
			return fmt.Errorf("render %s: %w", route.Path, err)
		}
		r.doc.SetContent(page)
		return nil
	}

	layout, err := r.fetcher.Fetch(ctx, route.Layout)
	if err != nil {
		return fmt.Errorf("render layout of %s: %w", route.Path, err)
	}
	r.doc.SetContent(layout)
	r.showProfile(ctx)
	if r.layout != nil {
		view := r.layout(ctx)
		if r.generation.Load() != gen {
			return errSuperseded
		}
		r.layoutView = view
	}
	r.doc.HighlightMenu(route.Path)

	page, err := r.fetcher.Fetch(ctx, route.Template)
	if err != nil {
		return fmt.Errorf("render %s: %w", route.Path, err)
	}
	if err := r.doc.SetRegion(ContentRegion, page); err != nil {
		return fmt.Errorf("render %s: %w", route.Path, err)
	}
	return nil
}

func (r *Router) showProfile(ctx context.Context) {
	if r.profile == nil {
		return
	}
	user, err := r.profile.User(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "Stored user info unreadable", log.FieldError, err)
		return
	}
	if user != nil {
		r.doc.SetProfileName(user.FullName())
	}
}

// unmount removes the resources of the mounted route. Calling it again is
// harmless.
func (r *Router) unmount() {
	route := r.mounted
	if route == nil {
		return
	}
	for _, style := range route.Styles {
		r.doc.RemoveStyle(StyleDir + style)
	}
	for _, script := range route.Scripts {
		r.doc.RemoveScript(ScriptDir + script)
	}
	r.doc.ClearBodyStyle()
	r.mounted = nil
}

// deactivate drops the controllers of a route whose activation failed.
func (r *Router) deactivate() {
	r.active = nil
	r.layoutView = nil
}

// Element is a clicked node. Parent is nil at the root.
type Element struct {
	Tag    string
	Href   string
	Parent *Element
}

func (e *Element) isAnchor() bool {
	return e != nil && strings.EqualFold(e.Tag, "a")
}

// HandleClick intercepts in-app links: anchors and elements whose direct
// parent is an anchor. It reports whether the click was turned into a
// navigation; otherwise the default behavior applies.
func (r *Router) HandleClick(ctx context.Context, target *Element) (bool, error) {
	var anchor *Element
	switch {
	case target.isAnchor():
		anchor = target
	case target != nil && target.Parent.isAnchor():
		anchor = target.Parent
	default:
		return false, nil
	}

	href := anchor.Href
	if r.origin != "" {
		href = strings.TrimPrefix(href, r.origin)
	}
	if href == "" || strings.HasPrefix(href, voidHref) {
		return false, nil
	}
	ref, err := url.Parse(href)
	if err != nil || ref.Scheme != "" || ref.Host != "" {
		return false, nil
	}

	current := &url.URL{Path: r.history.Path(), RawQuery: r.history.Query().Encode()}
	resolved := current.ResolveReference(ref)
	if resolved.Path == current.Path && resolved.Query().Encode() == current.RawQuery {
		return false, nil
	}
	resolved.Fragment = ""
	return true, r.Navigate(ctx, resolved.RequestURI())
}
