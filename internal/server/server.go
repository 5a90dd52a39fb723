// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the analysis engine over HTTP: the two analysis
// endpoints, a health check reporting database connectivity, and the
// Prometheus metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/provenance-engine/internal/corpus"
	"github.com/pdiddy/provenance-engine/internal/engine"
	"github.com/pdiddy/provenance-engine/internal/retrieval"
	"github.com/pdiddy/provenance-engine/pkg/log"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

const appName = "OCR Plagiarism Detection API"

// inputTooShortDetail is the client-facing message for the word gate.
const inputTooShortDetail = "Text too short for analysis. Please provide at least 5 meaningful words."

// Server wires the engine into a gin router.
type Server struct {
	engine  *engine.Engine
	store   *corpus.Store
	cfg     types.ServerConfig
	version string
}

// New builds a Server around an assembled engine.
func New(eng *engine.Engine, store *corpus.Store, cfg types.ServerConfig, version string) *Server {
	return &Server{engine: eng, store: store, cfg: cfg, version: version}
}

// analyzeRequest is the JSON body of both analysis endpoints.
type analyzeRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

// errorResponse is the JSON body of every error status.
type errorResponse struct {
	Detail string `json:"detail"`
}

// healthResponse reports service and database status.
type healthResponse struct {
	Status            string `json:"status"`
	AppName           string `json:"app_name"`
	Version           string `json:"version"`
	DatabaseConnected bool   `json:"database_connected"`
}

// Router assembles the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger())

	api := r.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/analyze/external", s.handleAnalyzeExternal)

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	resp, err := s.engine.AnalyzeLocal(c.Request.Context(), req.StudentID, req.Text)
	if err != nil {
		if errors.Is(err, engine.ErrInputTooShort) {
			c.JSON(http.StatusBadRequest, errorResponse{Detail: inputTooShortDetail})
			return
		}
		log.Error("local analysis failed", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAnalyzeExternal(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	resp, err := s.engine.AnalyzeExternal(c.Request.Context(), req.StudentID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInputTooShort):
			c.JSON(http.StatusBadRequest, errorResponse{Detail: inputTooShortDetail})
		case errors.Is(err, retrieval.ErrServiceUnavailable):
			// Distinguishable from an empty success list.
			c.JSON(http.StatusBadGateway, errorResponse{Detail: "external bibliographic service unavailable"})
		default:
			log.Error("external analysis failed", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Detail: "analysis failed"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	dbConnected := s.store.Ping(c.Request.Context()) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}
	c.JSON(http.StatusOK, healthResponse{
		Status:            status,
		AppName:           appName,
		Version:           s.version,
		DatabaseConnected: dbConnected,
	})
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	gin.SetMode(s.cfg.Mode)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
