// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/studio-go/internal/config"
	"github.com/olegiv/studio-go/internal/handler"
	"github.com/olegiv/studio-go/internal/logging"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/session"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/upload"
	"github.com/olegiv/studio-go/web"
)

// eventRetentionDays bounds how long mirrored log events are kept.
const eventRetentionDays = 90

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods for an admin view.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
	Inline   http.HandlerFunc
}

// registerCRUD registers the admin routes for a resource under base:
// GET base, GET/POST base/new, GET/POST base/{id}/edit, POST base/{id}/delete
// and, when declared, POST base/{id}/inline.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base+handler.RouteSuffixNew, h.Create)
	r.Get(base+handler.RouteParamID+"/edit", h.EditForm)
	r.Post(base+handler.RouteParamID+"/edit", h.Update)
	r.Post(base+handler.RouteParamID+"/delete", h.Delete)
	if h.Inline != nil {
		r.Post(base+handler.RouteParamID+"/inline", h.Inline)
	}
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	createAdmin := flag.Bool("create-admin", false, "Create an admin account and exit")
	changePassword := flag.Bool("change-password", false, "Change an admin account password and exit")
	changeUsername := flag.Bool("change-username", false, "Change an admin account username and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Studio - photography studio site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DB_PATH         SQLite database path (default: ./data/studio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_UPLOADS_DIR     Uploaded image directory (default: ./static/uploads)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("studio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	var provision provisionMode
	switch {
	case *createAdmin:
		provision = provisionCreateAdmin
	case *changePassword:
		provision = provisionChangePassword
	case *changeUsername:
		provision = provisionChangeUsername
	}

	if err := run(provision); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(provision provisionMode) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Provisioning modes mutate admin_users and exit without serving HTTP.
	if provision != provisionNone {
		return runProvisioning(db, provision)
	}

	// Upgrade logger to mirror WARN and ERROR logs into the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	cutoff := time.Now().AddDate(0, 0, -eventRetentionDays)
	if pruned, err := store.New(db).DeleteEventsBefore(context.Background(), cutoff); err != nil {
		slog.Warn("failed to prune old events", "error", err)
	} else if pruned > 0 {
		slog.Info("pruned old events", "count", pruned, "cutoff", cutoff.Format(time.DateOnly))
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	uploads := upload.NewStore(cfg.UploadsDir)
	if err := uploads.EnsureDirs(); err != nil {
		return fmt.Errorf("preparing upload directories: %w", err)
	}
	slog.Info("upload directories ready", "dir", cfg.UploadsDir)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager)
	adminHandler := handler.NewAdminHandler(db, renderer, sessionManager)
	photosHandler := handler.NewPhotosHandler(db, renderer, sessionManager, uploads)
	blogsHandler := handler.NewBlogsHandler(db, renderer, sessionManager, uploads)
	slidesHandler := handler.NewSlidesHandler(db, renderer, sessionManager, uploads)
	packagesHandler := handler.NewPackagesHandler(db, renderer, sessionManager)
	frontendHandler := handler.NewFrontendHandler(db, renderer, sessionManager)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(cfg.SessionSecret)[:32], cfg.IsDevelopment(), cfg.ServerAddr()))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get("/about", frontendHandler.About)
		r.Get("/gallery", frontendHandler.Gallery)
		r.Get("/packages/{category}", frontendHandler.Packages)
		r.Get(handler.RouteBlog, frontendHandler.BlogList)
		r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.BlogDetail)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireAdmin(sessionManager))
		r.Use(middleware.LoadAdmin(sessionManager, db))

		r.Get(handler.RouteRoot, adminHandler.Dashboard)

		registerCRUD(r, handler.RoutePhotos, crudHandlers{
			List:     photosHandler.List,
			NewForm:  photosHandler.NewForm,
			Create:   photosHandler.Create,
			EditForm: photosHandler.EditForm,
			Update:   photosHandler.Update,
			Delete:   photosHandler.Delete,
			Inline:   photosHandler.Inline,
		})
		registerCRUD(r, handler.RouteBlogs, crudHandlers{
			List:     blogsHandler.List,
			NewForm:  blogsHandler.NewForm,
			Create:   blogsHandler.Create,
			EditForm: blogsHandler.EditForm,
			Update:   blogsHandler.Update,
			Delete:   blogsHandler.Delete,
		})
		registerCRUD(r, handler.RouteSlides, crudHandlers{
			List:     slidesHandler.List,
			NewForm:  slidesHandler.NewForm,
			Create:   slidesHandler.Create,
			EditForm: slidesHandler.EditForm,
			Update:   slidesHandler.Update,
			Delete:   slidesHandler.Delete,
			Inline:   slidesHandler.Inline,
		})
		registerCRUD(r, handler.RoutePackages, crudHandlers{
			List:     packagesHandler.List,
			NewForm:  packagesHandler.NewForm,
			Create:   packagesHandler.Create,
			EditForm: packagesHandler.EditForm,
			Update:   packagesHandler.Update,
			Delete:   packagesHandler.Delete,
			Inline:   packagesHandler.Inline,
		})
	})

	// Uploaded images are served from disk; all other static assets come
	// from the embedded filesystem. The more specific route wins.
	r.Handle("/static/uploads/*", http.StripPrefix("/static/uploads/",
		http.FileServer(http.Dir(cfg.UploadsDir))))

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
