// Package main provides the map bot server entry point.
package main

import (
	"net/http"
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/buildinfo"
	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/config"
	"github.com/campusnav/hku-mapbot-go/internal/dialog"
	"github.com/campusnav/hku-mapbot-go/internal/intent"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/ratelimit"
	"github.com/campusnav/hku-mapbot-go/internal/session"
	"github.com/campusnav/hku-mapbot-go/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// chatRequest is the body of POST /chat. SessionID is optional; a new
// session is minted when it is absent.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, cfg *config.Config, engine *dialog.Engine, db *storage.DB, cat *catalog.Catalog, intentCache *intent.Cache, sessions *session.Store, limiter *ratelimit.SessionLimiter, registry *prometheus.Registry, m *metrics.Metrics) {
	// Root endpoint - service identification
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "hku-mapbot",
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := db.Conn().PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		persistedIntents, _ := db.CountIntents(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"catalog": gin.H{
				"places": cat.Len(),
			},
			"intents": gin.H{
				"cached":    intentCache.Len(),
				"persisted": persistedIntents,
			},
			"sessions": gin.H{
				"active": sessions.ActiveCount(),
			},
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Chat endpoint - one conversational turn per request
	router.POST("/chat", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			m.RecordHTTPError("bad_request", "/chat")
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			m.RecordHTTPError("bad_request", "/chat")
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		if !limiter.Allow(sessionID) {
			m.RecordHTTPError("rate_limited", "/chat")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}

		reply := engine.HandleTurn(c.Request.Context(), sessionID, req.Message)
		c.JSON(http.StatusOK, chatResponse{
			SessionID: sessionID,
			Reply:     reply,
		})
	})

	// Prometheus metrics endpoint, behind basic auth when credentials are set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
