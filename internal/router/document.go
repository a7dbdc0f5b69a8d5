package router

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ContentRegion is the element of the layout that receives the page.
const ContentRegion = "content-layout"

var ErrRegionNotFound = errors.New("region not found")

// Document is the surface the router renders into. Removing a style or
// script that is not attached is a no-op.
type Document interface {
	AttachStyle(href string)
	// LoadScript returns once the script has loaded.
	LoadScript(ctx context.Context, src string) error
	RemoveStyle(href string)
	RemoveScript(src string)
	// ClearBodyStyle drops inline styling left on the body by a view.
	ClearBodyStyle()
	SetTitle(title string)
	// SetContent replaces the whole page content.
	SetContent(html string)
	// SetRegion fills the element with the given id inside the content.
	SetRegion(id, html string) error
	SetProfileName(name string)
	HighlightMenu(route string)
}

// MemoryDocument records what the router rendered. Shell adapters and tests
// build on it.
type MemoryDocument struct {
	Styles      []string
	Scripts     []string
	Title       string
	Content     string
	Regions     map[string]string
	ProfileName string
	Menu        MenuState
	BodyStyle   string

	// ScriptLoader, when set, is called for every script before it is
	// recorded as attached.
	ScriptLoader func(ctx context.Context, src string) error
}

var _ Document = (*MemoryDocument)(nil)

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{Regions: make(map[string]string)}
}

func (d *MemoryDocument) AttachStyle(href string) {
	d.Styles = append(d.Styles, href)
}

func (d *MemoryDocument) LoadScript(ctx context.Context, src string) error {
	if d.ScriptLoader != nil {
		if err := d.ScriptLoader(ctx, src); err != nil {
			return err
		}
	}
	d.Scripts = append(d.Scripts, src)
	return nil
}

func (d *MemoryDocument) RemoveStyle(href string) {
	d.Styles = remove(d.Styles, href)
}

func (d *MemoryDocument) RemoveScript(src string) {
	d.Scripts = remove(d.Scripts, src)
}

func remove(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

func (d *MemoryDocument) ClearBodyStyle() {
	d.BodyStyle = ""
}

func (d *MemoryDocument) SetTitle(title string) {
	d.Title = title
}

func (d *MemoryDocument) SetContent(html string) {
	d.Content = html
	d.Regions = make(map[string]string)
}

func (d *MemoryDocument) SetRegion(id, html string) error {
	if !strings.Contains(d.Content, `id="`+id+`"`) {
		return fmt.Errorf("set %s: %w", id, ErrRegionNotFound)
	}
	d.Regions[id] = html
	return nil
}

func (d *MemoryDocument) SetProfileName(name string) {
	d.ProfileName = name
}

func (d *MemoryDocument) HighlightMenu(route string) {
	d.Menu = Highlight(Menu, route)
}

// Page returns the page fragment: the content region when a layout is
// rendered, the whole content otherwise.
func (d *MemoryDocument) Page() string {
	if html, ok := d.Regions[ContentRegion]; ok {
		return html
	}
	return d.Content
}

// MenuEntry is a sidebar link. Sub-category entries live in the collapsible
// "categories" group.
type MenuEntry struct {
	Href        string
	SubCategory bool
}

// Menu is the sidebar of the layout.
var Menu = []MenuEntry{
	{Href: "/"},
	{Href: "/operations"},
	{Href: "/income", SubCategory: true},
	{Href: "/expense", SubCategory: true},
}

// MenuState is the highlighted part of the sidebar.
type MenuState struct {
	Active             []string
	CategoriesExpanded bool
}

// IsActive reports whether href is highlighted.
func (s MenuState) IsActive(href string) bool {
	return slices.Contains(s.Active, href)
}

// MenuActive reports whether the entry linking to href is highlighted on
// route. The root entry is only active on the root route.
func MenuActive(route, href string) bool {
	if href == "/" {
		return route == "/"
	}
	return strings.Contains(route, href)
}

// Highlight computes the menu state for route. An active sub-category also
// expands the categories group.
func Highlight(entries []MenuEntry, route string) MenuState {
	var s MenuState
	for _, e := range entries {
		if !MenuActive(route, e.Href) {
			continue
		}
		s.Active = append(s.Active, e.Href)
		if e.SubCategory {
			s.CategoriesExpanded = true
		}
	}
	return s
}
