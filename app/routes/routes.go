package routes

import (
	"html/template"
	"net/http"

	"portfolio/app/controllers"
	"portfolio/app/middleware"
	"portfolio/app/models"
	"portfolio/app/services"
	"portfolio/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router wires into its controllers.
type Dependencies struct {
	PostService *services.PostService
	Site        models.SiteConfig
	Projects    []models.Project
	Templates   map[string]*template.Template
	Logger      *zap.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recoverer(deps.Logger))

	pageController := controllers.NewPageController(deps.PostService, deps.Site, deps.Projects, deps.Templates, deps.Logger)
	feedController := controllers.NewFeedController(
		deps.PostService,
		services.NewFeedService(deps.Site),
		services.NewSitemapService(deps.Site),
		deps.Logger,
	)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))

	// Pages
	router.HandleFunc("/", pageController.Home).Methods("GET")
	router.HandleFunc("/posts", pageController.Index).Methods("GET")
	router.HandleFunc("/posts/{slug:.+}", pageController.Show).Methods("GET")

	// Feeds
	router.Handle("/rss.xml", middleware.ETag(http.HandlerFunc(feedController.RSS))).Methods("GET")
	router.Handle("/sitemap.xml", middleware.ETag(http.HandlerFunc(feedController.Sitemap))).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(pageController.NotFound)

	return router
}
