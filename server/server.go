// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package server hosts the web UI and the JSON API in front of the chat
// engine: agent registration, sends, context views, the forwarding proxy,
// and Prometheus metrics.
package server

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/a2anet/a2a-ui/chat"
	"github.com/a2anet/a2a-ui/telemetry"
)

//go:embed static
var staticFS embed.FS

// Server is the HTTP front of the application.
type Server struct {
	server  *http.Server
	router  *chi.Mux
	manager *chat.Manager
	logger  *slog.Logger
}

// Config carries the server's collaborators and listen address.
type Config struct {
	Addr    string
	Manager *chat.Manager
	Logger  *slog.Logger
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	s := &Server{
		router:  r,
		manager: cfg.Manager,
		logger:  cfg.Logger,
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.metricsMiddleware)

		r.Post("/agents", s.handleAddAgent)
		r.Get("/agents", s.handleListAgents)
		r.Post("/agents/select", s.handleSelectAgent)

		r.Post("/message", s.handleSendMessage)
		r.Post("/new-chat", s.handleNewChat)

		r.Get("/contexts", s.handleListContexts)
		r.Get("/contexts/{id}", s.handleGetContext)
		r.Post("/contexts/{id}/select", s.handleSelectContext)

		r.Post("/select/task", s.handleSelectTask)
		r.Post("/select/artifact", s.handleSelectArtifact)

		r.Post("/proxy", s.handleProxy)
	})

	s.router.Get("/", s.handleIndex)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		telemetry.Metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		telemetry.Metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
