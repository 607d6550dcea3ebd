// Package templates embeds the server-rendered pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded page templates.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
