// Package main provides the map bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusnav/hku-mapbot-go/internal/buildinfo"
	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/config"
	"github.com/campusnav/hku-mapbot-go/internal/dialog"
	"github.com/campusnav/hku-mapbot-go/internal/intent"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/oracle"
	"github.com/campusnav/hku-mapbot-go/internal/ratelimit"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
	"github.com/campusnav/hku-mapbot-go/internal/sentry"
	"github.com/campusnav/hku-mapbot-go/internal/session"
	"github.com/campusnav/hku-mapbot-go/internal/storage"
	"github.com/campusnav/hku-mapbot-go/internal/timeouts"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting HKU MapBot Server")

	// Initialize error tracking (no-op without a token)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking enabled")
	}
	defer sentry.Flush(timeouts.SentryFlush)

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Load the place catalog
	cat, err := catalog.Load(cfg.EntitiesPath, cfg.FacilitiesPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load place catalog")
	}
	log.WithField("places", cat.Len()).Info("Place catalog loaded")

	// Create oracle client (optional - requires API key)
	oracleClient := oracle.NewClient(oracle.Config{
		APIKey:  cfg.OracleAPIKey,
		BaseURL: cfg.OracleBaseURL,
		Model:   cfg.OracleModel,
		Timeout: cfg.OracleTimeout,
	}, log, m)
	if oracleClient.IsEnabled() {
		log.WithField("model", cfg.OracleModel).Info("Oracle client created")
	} else {
		log.Info("Oracle API key not configured, rule-based intent fallback only")
	}

	// Create intent extractor backed by the persisted cache
	intentCache := intent.NewCache()
	extractor := intent.New(oracleClient, intentCache, db, log, m)
	if err := extractor.LoadPersisted(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to load persisted intents")
	}
	log.WithField("cached_intents", intentCache.Len()).Info("Intent extractor created")

	// Create resolver
	res := resolver.New(cat, extractor, log, m)

	// Create session store for pending confirmations
	sessions := session.NewStore(session.Config{
		TTL:     cfg.SessionTTL,
		Metrics: m,
	})
	defer sessions.Stop()
	log.WithField("ttl", cfg.SessionTTL).Info("Session store created")

	// Create dialog engine; resolution turns are persisted for auditing
	engine := dialog.New(res, sessions, nil, log, m)
	engine.SetAudit(func(ctx context.Context, sessionID, query, outcome, method, place string) {
		if err := db.LogResolution(ctx, storage.Resolution{
			SessionID: sessionID,
			Query:     query,
			Outcome:   outcome,
			Method:    method,
			Place:     place,
		}); err != nil {
			log.WithError(err).Warn("Failed to persist resolution record")
		}
	})
	log.Info("Dialog engine created")

	// Per-session chat rate limiter
	limiter := ratelimit.NewSessionLimiter(ratelimit.SessionConfig{
		Burst:      cfg.ChatRateBurst,
		RefillRate: cfg.ChatRateRefill,
		Metrics:    m,
	})
	defer limiter.Stop()

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(sentryMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, cfg, engine, db, cat, intentCache, sessions, limiter, registry, m)

	// Create HTTP server with timeouts sized for oracle round trips
	// See internal/timeouts for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  timeouts.HTTPRead,
		WriteTimeout: timeouts.HTTPWrite,
		IdleTimeout:  timeouts.HTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop background cleanup goroutines
	sessions.Stop()
	limiter.Stop()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}
