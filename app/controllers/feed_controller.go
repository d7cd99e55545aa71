package controllers

import (
	"net/http"

	"portfolio/app/services"

	"go.uber.org/zap"
)

const xmlContentType = "application/xml"

// FeedController serves the machine-readable documents: RSS and sitemap
type FeedController struct {
	postService    *services.PostService
	feedService    *services.FeedService
	sitemapService *services.SitemapService
	logger         *zap.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(postService *services.PostService, feedService *services.FeedService, sitemapService *services.SitemapService, logger *zap.Logger) *FeedController {
	return &FeedController{
		postService:    postService,
		feedService:    feedService,
		sitemapService: sitemapService,
		logger:         logger,
	}
}

// RSS serves /rss.xml
func (fc *FeedController) RSS(w http.ResponseWriter, r *http.Request) {
	posts, err := fc.postService.All()
	if err != nil {
		fc.fail(w, "failed to fetch posts", err)
		return
	}

	body, err := fc.feedService.RSS(posts)
	if err != nil {
		fc.fail(w, "failed to build feed", err)
		return
	}
	fc.sendXML(w, body)
}

// Sitemap serves /sitemap.xml
func (fc *FeedController) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := fc.postService.All()
	if err != nil {
		fc.fail(w, "failed to fetch posts", err)
		return
	}

	body, err := fc.sitemapService.XML(fc.sitemapService.Entries(posts))
	if err != nil {
		fc.fail(w, "failed to build sitemap", err)
		return
	}
	fc.sendXML(w, body)
}

func (fc *FeedController) sendXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", xmlContentType)
	if _, err := w.Write(body); err != nil {
		fc.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (fc *FeedController) fail(w http.ResponseWriter, msg string, err error) {
	fc.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
