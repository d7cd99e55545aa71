// Package service runs the portfolio web server and its maintenance commands.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"portfolio/app/config"
	"portfolio/app/content"
	"portfolio/app/repositories"
	"portfolio/app/routes"
	"portfolio/app/services"
	"portfolio/app/views"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop signal.
const ShutdownTimeout = 10 * time.Second

// App holds the wired application: storage, content and HTTP handler.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *badger.DB
	posts   *services.PostService
	loader  *content.Loader
	handler http.Handler
}

// NewApp opens storage, parses templates and builds the router.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	dataDir := cfg.DataDir
	if cfg.InMemory {
		dataDir = ""
	}
	db, err := openDB(dataDir, logger)
	if err != nil {
		return nil, err
	}

	templates, err := views.Load(views.Templates)
	if err != nil {
		db.Close()
		return nil, err
	}

	posts := services.NewPostService(repositories.NewBadgerPostRepository(db), logger)
	router := routes.SetupRoutes(routes.Dependencies{
		PostService: posts,
		Site:        cfg.Site,
		Projects:    cfg.Projects,
		Templates:   templates,
		Logger:      logger,
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		posts:   posts,
		loader:  content.NewLoader(os.DirFS(cfg.ContentDir), logger),
		handler: router,
	}, nil
}

// Handler returns the application's HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Reload loads the content directory and replaces the stored posts.
func (a *App) Reload(ctx context.Context) error {
	posts, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}
	if err := a.posts.Sync(posts); err != nil {
		return err
	}
	a.logger.Info("content synced", zap.Int("posts", len(posts)), zap.String("dir", a.cfg.ContentDir))
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

// NewServer returns an http.Server with the application's timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve loads content, optionally starts the content watcher, and serves on
// ln until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if err := a.Reload(ctx); err != nil {
		ln.Close()
		return fmt.Errorf("initial content load failed: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if a.cfg.Watch {
		w, err := content.NewWatcher(a.cfg.ContentDir, a.Reload, content.DefaultDebounce, a.logger)
		if err != nil {
			ln.Close()
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Run(ctx); err != nil {
				a.logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
		a.logger.Info("watching content", zap.String("dir", a.cfg.ContentDir))
	}

	srv := NewServer(a.cfg.Addr, a.handler)
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.String("addr", ln.Addr().String()), zap.String("url", a.cfg.Site.URL))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
