// Package main is the entry point for the Rust katas server. It reads
// configuration from the environment, builds the dependencies, and hands off
// to internal/server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rajeshpillai/rust-katas/internal/executor/rustc"
	"github.com/rajeshpillai/rust-katas/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	katasDir := "katas"
	if envDir := os.Getenv("KATAS_DIR"); envDir != "" {
		katasDir = envDir
	}

	staticDir := "static"
	if envDir := os.Getenv("STATIC_DIR"); envDir != "" {
		staticDir = envDir
	}
	staticDir, _ = filepath.Abs(staticDir)

	// DB_PATH overrides the default for production deployments, e.g.
	// DB_PATH=/var/lib/rust-katas/prod.db
	dbPath := "data/katas.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// The sandbox shells out to rustc per request, so a missing toolchain is
	// not fatal at startup: the server runs, and playground submissions report
	// the failure in their result body.
	execConfig := rustc.DefaultConfig()
	if path, err := exec.LookPath(execConfig.Rustc); err != nil {
		logger.Warn("rustc not found in PATH — playground runs will fail",
			slog.String("rustc", execConfig.Rustc),
		)
	} else {
		logger.Info("rustc located", slog.String("path", path))
	}
	executor := rustc.New(execConfig, logger)

	// JWT_SECRET should be a long random string, e.g. $(openssl rand -hex 32).
	// If it or the GitHub credentials are unset, auth routes are not
	// registered and the app runs anonymous-only.
	jwtSecret := os.Getenv("JWT_SECRET")
	githubClientID := os.Getenv("GITHUB_CLIENT_ID")
	githubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	githubCallbackURL := os.Getenv("GITHUB_CALLBACK_URL")
	if githubCallbackURL == "" {
		githubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", port)
	}

	cfg := server.Config{
		Port:               port,
		KatasDir:           katasDir,
		StaticDir:          staticDir,
		DBPath:             dbPath,
		JWTSecret:          jwtSecret,
		GitHubClientID:     githubClientID,
		GitHubClientSecret: githubClientSecret,
		GitHubCallbackURL:  githubCallbackURL,
	}

	srv, err := server.New(cfg, executor, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
