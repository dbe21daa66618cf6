package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	astar "github.com/pdrpinto/gridastar"
)

const maxBodyBytes = 1 << 20

// statusClientClosedRequest reports a request abandoned by the client
// (nginx convention; net/http has no constant for it).
const statusClientClosedRequest = 499

type point = [2]int

type createGridRequest struct {
	Rows *int `json:"rows"`
	Cols *int `json:"cols"`
}

type gridResponse struct {
	ID    string  `json:"id"`
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Walls []point `json:"walls"`
}

type cellRequest struct {
	State string `json:"state"`
}

type cellResponse struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	State string `json:"state"`
}

type pathResponse struct {
	Start    point         `json:"start"`
	Finish   point         `json:"finish"`
	Path     []point       `json:"path"`
	Length   int           `json:"length"`
	Cost     int           `json:"cost"`
	Expanded int           `json:"expanded"`
	Outcome  astar.Outcome `json:"outcome"`
}

type queryRequest struct {
	Start  point `json:"start"`
	Finish point `json:"finish"`
}

type pathsRequest struct {
	Queries []queryRequest `json:"queries"`
}

type pathsResponse struct {
	Results []pathResponse `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPoint(c astar.Coordinate) point { return point{c.X, c.Y} }

func fromPoint(p point) astar.Coordinate { return astar.Coordinate{X: p[0], Y: p[1]} }

func toPoints(cs []astar.Coordinate) []point {
	res := make([]point, 0, len(cs))
	for _, c := range cs {
		res = append(res, toPoint(c))
	}
	return res
}

func newPathResponse(start, finish astar.Coordinate, res astar.Result) pathResponse {
	return pathResponse{
		Start:    toPoint(start),
		Finish:   toPoint(finish),
		Path:     toPoints(res.Path),
		Length:   len(res.Path),
		Cost:     res.Cost,
		Expanded: res.ExpandedNodes,
		Outcome:  res.Outcome,
	}
}

func (s *Server) handleCreateGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGridRequest
		// an empty body falls back to the configured dimensions
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		rows, cols := s.cfg.Grid.Rows, s.cfg.Grid.Cols
		if req.Rows != nil {
			rows = *req.Rows
		}
		if req.Cols != nil {
			cols = *req.Cols
		}

		id, err := s.store.Create(rows, cols)
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		s.metrics.SetGrids(s.store.Len())
		s.logger.WithFields(log.Fields{"grid": id, "rows": rows, "cols": cols}).Info("grid.created")

		writeJSON(w, http.StatusCreated, gridResponse{ID: id, Rows: rows, Cols: cols, Walls: []point{}})
	}
}

func (s *Server) handleGetGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		var resp gridResponse
		err := s.store.Read(id, func(g *astar.Grid) error {
			resp = gridResponse{ID: id, Rows: g.Rows(), Cols: g.Cols(), Walls: toPoints(g.Walls())}
			return nil
		})
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleDeleteGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		if !s.store.Delete(id) {
			s.writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %s", ErrGridNotFound, id))
			return
		}
		s.metrics.SetGrids(s.store.Len())
		s.logger.WithField("grid", id).Info("grid.deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleClearGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		err := s.store.Write(id, func(g *astar.Grid) error {
			return g.Fill(astar.Free)
		})
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		s.logger.WithField("grid", id).Info("grid.cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGetCell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		row, col, err := cellParams(r)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		var state astar.CellState
		err = s.store.Read(id, func(g *astar.Grid) error {
			var gerr error
			state, gerr = g.GetCell(row, col)
			return gerr
		})
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, cellResponse{Row: row, Col: col, State: state.String()})
	}
}

func (s *Server) handleSetCell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		row, col, err := cellParams(r)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		var req cellRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		state, err := astar.ParseCellState(req.State)
		if err != nil {
			s.metrics.ObserveCellWrite(string(astar.KindInvalidValue))
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}

		err = s.store.Write(id, func(g *astar.Grid) error {
			return g.SetCell(row, col, state)
		})
		if err != nil {
			var ce *astar.CellError
			if errors.As(err, &ce) {
				s.metrics.ObserveCellWrite(string(ce.Kind))
			}
			s.writeError(w, r, statusFor(err), err)
			return
		}
		s.metrics.ObserveCellWrite(state.String())
		s.logger.WithFields(log.Fields{"grid": id, "row": row, "col": col, "state": state.String()}).Debug("grid.cell_set")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleFindPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		q := r.URL.Query()

		var resp pathResponse
		err := s.store.Read(id, func(g *astar.Grid) error {
			// the original demo pins start and finish to opposite corners
			start := astar.Coordinate{X: 0, Y: 0}
			finish := astar.Coordinate{X: g.Rows() - 1, Y: g.Cols() - 1}
			if v := q.Get("start"); v != "" {
				c, err := astar.ParseCoordinate(v)
				if err != nil {
					return badRequest{err}
				}
				start = c
			}
			if v := q.Get("finish"); v != "" {
				c, err := astar.ParseCoordinate(v)
				if err != nil {
					return badRequest{err}
				}
				finish = c
			}

			began := time.Now()
			res := astar.Search(g, start, finish, astar.WithLogger(s.logger))
			s.metrics.ObserveSearch(res, time.Since(began))
			resp = newPathResponse(start, finish, res)
			return nil
		})
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleFindPaths() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		var req pathsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		queries := make([]astar.Query, 0, len(req.Queries))
		for _, q := range req.Queries {
			queries = append(queries, astar.Query{Start: fromPoint(q.Start), Finish: fromPoint(q.Finish)})
		}

		options := []astar.Option{astar.WithLogger(s.logger)}
		if s.cfg.Search.Workers > 0 {
			options = append(options, astar.WithWorkers(s.cfg.Search.Workers))
		}

		var results []astar.Result
		began := time.Now()
		err := s.store.Read(id, func(g *astar.Grid) error {
			var serr error
			results, serr = astar.SearchAll(r.Context(), g, queries, options...)
			return serr
		})
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}

		resp := pathsResponse{Results: make([]pathResponse, 0, len(results))}
		elapsed := time.Since(began)
		for i, res := range results {
			s.metrics.ObserveSearch(res, elapsed/time.Duration(len(results)))
			resp.Results = append(resp.Results, newPathResponse(queries[i].Start, queries[i].Finish, res))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// badRequest marks an error raised inside a store callback as the client's fault.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, ErrGridNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGridTooLarge),
		errors.As(err, &br),
		astar.IsKind(err, astar.KindOutOfBounds),
		astar.IsKind(err, astar.KindInvalidValue),
		astar.IsKind(err, astar.KindInvalidDimension):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func cellParams(r *http.Request) (int, int, error) {
	row, err := strconv.Atoi(way.Param(r.Context(), "row"))
	if err != nil {
		return 0, 0, fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(way.Param(r.Context(), "col"))
	if err != nil {
		return 0, 0, fmt.Errorf("col: %w", err)
	}
	return row, col, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	entry := s.logger.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Warn("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
