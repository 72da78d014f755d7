// Package templates embeds the HTML pages of the creator screens.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse loads every page and the shared layout partials into one set.
func Parse() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
