// Package http exposes the registry over HTTP: a JSON API under /api, the
// embedded single-page UI at /, and the health and metrics endpoints.
package http

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lagunalabs/sucesos/internal/observability"
	"github.com/lagunalabs/sucesos/internal/recorder"
	"github.com/lagunalabs/sucesos/internal/store"
)

//go:embed static/index.html
var indexHTML []byte

// Server serves the registry UI and API.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	repo       *store.Repository
	recorder   *recorder.Recorder
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires the routes. The recorder carries the write-permission flag;
// the server never consults configuration directly for it.
func NewServer(addr string, repo *store.Repository, rec *recorder.Recorder, logger *slog.Logger, metrics *observability.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:   engine,
		repo:     repo,
		recorder: rec,
		logger:   logger,
		metrics:  metrics,
	}

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/events", s.handleListEvents)
		api.POST("/events", s.handleCreateEvent)
		api.GET("/events/meta", s.handleEventsMeta)
		api.GET("/report/frequency", s.handleFrequency)
		api.GET("/report/probabilities", s.handleProbabilities)
		api.GET("/map/markers", s.handleMarkers)
		api.GET("/export/csv", s.handleExportCSV)
		api.GET("/config", s.handleConfig)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
