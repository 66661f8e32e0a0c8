// Package server wires the application together: router, middleware, the
// dependency graph from database to handlers, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rajeshpillai/rust-katas/internal/auth"
	"github.com/rajeshpillai/rust-katas/internal/executor"
	"github.com/rajeshpillai/rust-katas/internal/handler"
	"github.com/rajeshpillai/rust-katas/internal/kata"
	"github.com/rajeshpillai/rust-katas/internal/middleware"
	sqliteRepo "github.com/rajeshpillai/rust-katas/internal/repository/sqlite"
	"github.com/rajeshpillai/rust-katas/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port      int
	KatasDir  string
	StaticDir string
	DBPath    string

	// JWTSecret plus the GitHub fields enable the login routes. When any of
	// them is missing the server runs in anonymous-only mode.
	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

func (c Config) authEnabled() bool {
	return c.JWTSecret != "" && c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, kata catalog, executor,
// services, handlers, routes.
func New(cfg Config, exec executor.Executor, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(exec); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes(exec executor.Executor) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	catalog, err := kata.LoadCatalog(s.config.KatasDir, s.logger)
	if err != nil {
		return fmt.Errorf("loading kata catalog: %w", err)
	}
	s.logger.Info("serving kata catalog",
		slog.String("dir", s.config.KatasDir),
		slog.Int("katas", catalog.Len()),
	)

	snippetService := service.NewSnippetService(s.db, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)
	kataHandler := handler.NewKataHandler(catalog, s.logger)
	playgroundHandler := handler.NewPlaygroundHandler(exec, s.logger)

	var tokens *auth.TokenService
	if s.config.authEnabled() {
		tokens, err = auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
	} else {
		s.logger.Warn("auth disabled: JWT_SECRET and GitHub OAuth credentials not fully configured")
	}

	var authHandler *handler.AuthHandler
	var progressHandler *handler.ProgressHandler
	if tokens != nil {
		authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
		progressService := service.NewProgressService(s.db, catalog, s.logger)
		github := auth.NewGitHubProvider(s.config.GitHubClientID, s.config.GitHubClientSecret, s.config.GitHubCallbackURL)
		authHandler = handler.NewAuthHandler(github, authService, s.logger)
		progressHandler = handler.NewProgressHandler(progressService, s.logger)
	}

	s.router.Route("/api", func(r chi.Router) {
		// Kata catalog and the playground are fully public.
		r.Get("/katas", kataHandler.HandleList)
		r.Get("/katas/{id}", kataHandler.HandleGet)
		r.Post("/playground/run", playgroundHandler.HandleRun)

		// Snippets work anonymously; a session only adds ownership.
		r.Group(func(r chi.Router) {
			if tokens != nil {
				r.Use(auth.OptionalAuth(tokens))
			}
			r.Get("/snippets", snippetHandler.HandleList)
			r.Post("/snippets", snippetHandler.HandleCreate)
			r.Get("/snippets/{id}", snippetHandler.HandleGet)
			r.Put("/snippets/{id}", snippetHandler.HandleUpdate)
			r.Delete("/snippets/{id}", snippetHandler.HandleDelete)
		})

		if tokens != nil {
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Get("/me", authHandler.HandleMe)
				r.Get("/progress", progressHandler.HandleList)
				r.Post("/progress/{kataID}", progressHandler.HandleMark)
				r.Delete("/progress/{kataID}", progressHandler.HandleUnmark)
			})
		}
	})

	if tokens != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
		s.router.Post("/auth/logout", authHandler.HandleLogout)
	}

	// The frontend is a static bundle served from the root.
	if s.config.StaticDir != "" {
		s.router.Handle("/*", http.FileServer(http.Dir(s.config.StaticDir)))
	}

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.config.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// A playground run can legitimately hold the connection for the full
		// compile plus run budget, so the write timeout sits above that.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
