package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"portfolio/app/models"

	"go.uber.org/zap"
)

type pageMeta struct {
	Title       string
	Description string
	Creator     string
}

// pageData is the view model handed to every page template.
type pageData struct {
	Meta     pageMeta
	Site     models.SiteConfig
	Projects []models.Project
	Posts    []*models.Post
	Post     *models.Post
	Status   int
	Message  string
}

// renderer executes page templates and writes consistent errors.
type renderer struct {
	site      models.SiteConfig
	templates map[string]*template.Template
	logger    *zap.Logger
}

func (rd *renderer) meta(section, description string) pageMeta {
	creator := rd.site.Author
	if creator == "" {
		creator = rd.site.Name
	}
	if description == "" {
		description = rd.site.Description
	}
	return pageMeta{
		Title:       creator + " · " + section,
		Description: description,
		Creator:     creator,
	}
}

// render buffers the page so a template failure never sends a partial body.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, page string, status int, data pageData) {
	data.Site = rd.site
	var buf bytes.Buffer
	if err := rd.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.Error("template error", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (rd *renderer) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rd.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

func (rd *renderer) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	if _, ok := rd.templates["error"]; !ok {
		http.Error(w, message, status)
		return
	}
	rd.render(w, r, "error", status, pageData{
		Meta:    rd.meta(http.StatusText(status), ""),
		Status:  status,
		Message: message,
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
