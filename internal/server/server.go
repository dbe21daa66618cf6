// Package server serves grids and path queries over HTTP/JSON.
package server

import (
	"net/http"

	"github.com/matryer/way"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/metrics"
)

// Server bundles the router with the state its handlers share. Nothing is
// held at package level; the serve command builds one Server at startup.
type Server struct {
	router   *way.Router
	store    *Store
	logger   log.FieldLogger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	cfg      config.Config
}

// New wires a Server. reg receives the server's collectors and is served
// on /metrics.
func New(cfg config.Config, logger log.FieldLogger, reg *prometheus.Registry) *Server {
	s := &Server{
		store:    NewStore(cfg.Grid.MaxCells),
		logger:   logger,
		metrics:  metrics.New(reg),
		gatherer: reg,
		cfg:      cfg,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
