package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PageController handles the HTML pages of the site
type PageController struct {
	renderer
	postService *services.PostService
	projects    []models.Project
}

// NewPageController creates a new PageController
func NewPageController(postService *services.PostService, site models.SiteConfig, projects []models.Project, templates map[string]*template.Template, logger *zap.Logger) *PageController {
	return &PageController{
		renderer: renderer{
			site:      site,
			templates: templates,
			logger:    logger,
		},
		postService: postService,
		projects:    projects,
	}
}

// Home renders the project cards and the most recent posts
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.Recent()
	if err != nil {
		pc.sendError(w, r, "Failed to fetch posts", http.StatusInternalServerError)
		pc.logger.Error("failed to fetch recent posts", zap.Error(err))
		return
	}

	pc.render(w, r, "home", http.StatusOK, pageData{
		Meta:     pc.meta("home", ""),
		Projects: pc.projects,
		Posts:    posts,
	})
}

// Index lists every post
func (pc *PageController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.All()
	if err != nil {
		pc.sendError(w, r, "Failed to fetch posts", http.StatusInternalServerError)
		pc.logger.Error("failed to fetch posts", zap.Error(err))
		return
	}

	if wantsJSON(r) {
		pc.sendJSON(w, map[string]interface{}{
			"posts": posts,
		})
		return
	}

	pc.render(w, r, "index", http.StatusOK, pageData{
		Meta:  pc.meta("blog", ""),
		Posts: posts,
	})
}

// Show renders a single post
func (pc *PageController) Show(w http.ResponseWriter, r *http.Request) {
	slug := "/" + mux.Vars(r)["slug"]

	post, err := pc.postService.Get(slug)
	if errors.Is(err, repositories.ErrNotFound) {
		pc.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.sendError(w, r, "Failed to fetch post", http.StatusInternalServerError)
		pc.logger.Error("failed to fetch post", zap.String("slug", slug), zap.Error(err))
		return
	}

	if wantsJSON(r) {
		pc.sendJSON(w, post)
		return
	}

	pc.render(w, r, "show", http.StatusOK, pageData{
		Meta: pc.meta(post.Title, post.Description),
		Post: post,
	})
}

// NotFound renders the 404 page for unmatched routes
func (pc *PageController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, r, "Page not found", http.StatusNotFound)
}
