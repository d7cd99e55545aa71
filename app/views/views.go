// Package views holds the embedded page templates and static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"portfolio/app/models"
	"portfolio/app/services"
)

//go:embed layout.html home.html posts/*.html shared/*.html
var Templates embed.FS

//go:embed static
var static embed.FS

// Static returns the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"displayDate": services.FormatDisplayDate,
	"isoDate":     services.ISODate,
	"postPath": func(p *models.Post) string {
		return "/posts" + p.Slug
	},
}

// pages maps a page name to the files parsed with the layout.
var pages = map[string][]string{
	"home":  {"home.html", "shared/cards.html"},
	"index": {"posts/index.html"},
	"show":  {"posts/show.html"},
	"error": {"shared/error.html"},
}

// Load parses one template set per page from fsys.
func Load(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, files := range pages {
		patterns := append([]string{"layout.html"}, files...)
		tmpl, err := template.New(name).Funcs(Funcs).ParseFS(fsys, patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s templates: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}
