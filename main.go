package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/msomdec/buycars/internal/handler"
	"github.com/msomdec/buycars/internal/imagehost"
	"github.com/msomdec/buycars/internal/marketplace"
	"github.com/msomdec/buycars/internal/repository/sqlite"
	"github.com/msomdec/buycars/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "buycars.db")
	apiBaseURL := envOrDefault("API_BASE_URL", "http://localhost:5000")
	sweepSchedule := envOrDefault("SESSION_SWEEP_SCHEDULE", service.DefaultSweepSchedule)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := true
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			slog.Error("invalid COOKIE_SECURE", "error", err)
			os.Exit(1)
		}
		cookieSecure = parsed
	}

	backendTimeout := 15 * time.Second
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			slog.Error("invalid BACKEND_TIMEOUT", "error", err)
			os.Exit(1)
		}
		if parsed <= 0 {
			slog.Error("BACKEND_TIMEOUT must be positive", "value", parsed)
			os.Exit(1)
		}
		backendTimeout = parsed
	}

	imageCfg := imagehost.Config{
		Endpoint:     os.Getenv("IMAGE_UPLOAD_URL"),
		CloudName:    os.Getenv("IMAGE_CLOUD_NAME"),
		UploadPreset: os.Getenv("IMAGE_UPLOAD_PRESET"),
	}
	if imageCfg.Endpoint == "" {
		slog.Warn("IMAGE_UPLOAD_URL is not set; creating listings will fail")
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	httpClient := &http.Client{Timeout: backendTimeout}
	backend := marketplace.New(apiBaseURL, httpClient)
	uploader := imagehost.New(imageCfg, httpClient)

	authService := service.NewAuthService(backend, db.Sessions(), jwtSecret)
	listingService := service.NewListingService(backend, uploader)

	// Sign-up, OTP and sign-in posts: bursts of 10 per IP, one more every 6s.
	limiter := service.NewTokenBucket(1.0/6, 10)
	defer limiter.Close()

	sweeper, err := service.NewSessionSweeper(authService, sweepSchedule)
	if err != nil {
		slog.Error("invalid SESSION_SWEEP_SCHEDULE", "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, listingService, limiter, cookieSecure)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(handler.LogRequests(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "backend", backend.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
