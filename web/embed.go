// Package web embeds the page templates fetched by the router.
package web

import "embed"

// TemplatesFS holds the layout and page fragments under templates/.
//
//go:embed templates
var TemplatesFS embed.FS
