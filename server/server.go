// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the triage pipeline over HTTP.
//
// Surface:
//
//	POST /submit           run a symptom description through the pipeline
//	POST /semantic-search  find similar past reports
//	GET  /reports          list reports, newest first
//	GET  /healthz          liveness probe
package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/triagit/search"
	"github.com/poiesic/triagit/storage"
	"github.com/poiesic/triagit/triage"
)

// defaultReportsLimit caps the /reports listing.
const defaultReportsLimit = 100

// Server wires the HTTP handlers to the triage services.
type Server struct {
	engine   *gin.Engine
	pipeline *triage.Pipeline
	searcher *search.Searcher
	reports  storage.ReportRepository
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates a Server with its routes registered.
func New(pipeline *triage.Pipeline, searcher *search.Searcher, reports storage.ReportRepository, opts ...Option) *Server {
	s := &Server{
		pipeline: pipeline,
		searcher: searcher,
		reports:  reports,
		logger:   slog.Default().With("component", "http-server"),
	}

	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(RequestID())
	engine.Use(requestLogger(s.logger))

	engine.POST("/submit", s.handleSubmit)
	engine.POST("/semantic-search", s.handleSemanticSearch)
	engine.GET("/reports", s.handleReports)
	engine.GET("/healthz", s.handleHealthz)

	s.engine = engine
	return s
}

// Router returns the underlying gin engine, ready to serve.
func (s *Server) Router() *gin.Engine {
	return s.engine
}
