// Package web carries the embedded HTML templates so the binary is
// self-contained. A templates directory on disk can still be pointed at via
// TEMPLATES_PATH to override them without rebuilding.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

// TemplatesPattern is the glob used to parse the embedded templates.
const TemplatesPattern = "templates/*.html"
