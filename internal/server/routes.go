package server

import (
	"github.com/matryer/way"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	URI_GRIDS = "/grids"
	URI_GRID  = "/grids/:id"
	URI_CLEAR = "/grids/:id/clear"
	URI_CELL  = "/grids/:id/cells/:row/:col"
	URI_PATH  = "/grids/:id/path"
	URI_PATHS = "/grids/:id/paths"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("POST", URI_GRIDS, s.handleCreateGrid())
	s.router.HandleFunc("GET", URI_GRID, s.handleGetGrid())
	s.router.HandleFunc("DELETE", URI_GRID, s.handleDeleteGrid())
	s.router.HandleFunc("POST", URI_CLEAR, s.handleClearGrid())
	s.router.HandleFunc("GET", URI_CELL, s.handleGetCell())
	s.router.HandleFunc("PUT", URI_CELL, s.handleSetCell())
	s.router.HandleFunc("GET", URI_PATH, s.handleFindPath())
	s.router.HandleFunc("POST", URI_PATHS, s.handleFindPaths())
	s.router.Handle("GET", "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}
