package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Grid.Rows, cfg.Grid.Cols = 3, 3
	cfg.Grid.MaxCells = 10000
	cfg.Search.Workers = 2
	ts := httptest.NewServer(New(cfg, logger, prometheus.NewRegistry()))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func createGrid(t *testing.T, ts *httptest.Server, body string) gridResponse {
	t.Helper()
	resp, b := do(t, http.MethodPost, ts.URL+"/grids", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	var g gridResponse
	require.NoError(t, json.Unmarshal(b, &g))
	return g
}

func TestServer_GridLifecycle(t *testing.T) {
	ts := newTestServer(t)

	g := createGrid(t, ts, `{"rows": 4, "cols": 5}`)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 4, g.Rows)
	assert.Equal(t, 5, g.Cols)

	resp, b := do(t, http.MethodPut, ts.URL+"/grids/"+g.ID+"/cells/1/2", `{"state": "wall"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(b))

	resp, b = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/cells/1/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cell cellResponse
	require.NoError(t, json.Unmarshal(b, &cell))
	assert.Equal(t, "wall", cell.State)

	resp, b = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got gridResponse
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []point{{1, 2}}, got.Walls)

	resp, _ = do(t, http.MethodDelete, ts.URL+"/grids/"+g.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CreateDefaults(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, "")
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 3, g.Cols)
}

func TestServer_CreateRejects(t *testing.T) {
	ts := newTestServer(t)
	for _, body := range []string{`{"rows": -1, "cols": 2}`, `{"rows": 1000, "cols": 1000}`, `{"rows": "x"}`, `{"depth": 3}`} {
		resp, b := do(t, http.MethodPost, ts.URL+"/grids", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Contains(t, string(b), `"error"`)
	}
}

func TestServer_CellErrors(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, "")

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/cells/-1/0", "", http.StatusBadRequest},
		{http.MethodGet, "/cells/3/0", "", http.StatusBadRequest},
		{http.MethodGet, "/cells/x/0", "", http.StatusBadRequest},
		{http.MethodPut, "/cells/0/9", `{"state": "wall"}`, http.StatusBadRequest},
		{http.MethodPut, "/cells/0/0", `{"state": "lava"}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		resp, b := do(t, c.method, ts.URL+"/grids/"+g.ID+c.path, c.body)
		assert.Equal(t, c.status, resp.StatusCode, "%s %s: %s", c.method, c.path, b)
	}

	resp, _ := do(t, http.MethodGet, ts.URL+"/grids/unknown/cells/0/0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_FindPath(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, "")

	resp, b := do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/path", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	var pr pathResponse
	require.NoError(t, json.Unmarshal(b, &pr))
	assert.Equal(t, point{0, 0}, pr.Start)
	assert.Equal(t, point{2, 2}, pr.Finish)
	assert.Equal(t, 5, pr.Length)
	assert.Equal(t, 4, pr.Cost)
	assert.Contains(t, string(b), `"outcome":"found"`)

	for col := 0; col < 3; col++ {
		resp, _ = do(t, http.MethodPut, ts.URL+"/grids/"+g.ID+"/cells/1/"+string(rune('0'+col)), `{"state": "wall"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp, b = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/path?start=0,0&finish=2,0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(b, &pr))
	assert.Equal(t, 0, pr.Length)
	assert.Empty(t, pr.Path)
	assert.Contains(t, string(b), `"outcome":"unreachable"`)

	resp, b = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/path?start=1,1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `"outcome":"invalid_endpoint"`)

	resp, _ = do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/path?start=zero", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_FindPaths(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, `{"rows": 5, "cols": 5}`)

	body, err := json.Marshal(pathsRequest{Queries: []queryRequest{
		{Start: point{0, 0}, Finish: point{4, 4}},
		{Start: point{2, 2}, Finish: point{2, 2}},
		{Start: point{0, 0}, Finish: point{5, 5}},
	}})
	require.NoError(t, err)

	resp, b := do(t, http.MethodPost, ts.URL+"/grids/"+g.ID+"/paths", string(bytes.TrimSpace(body)))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	var pr pathsResponse
	require.NoError(t, json.Unmarshal(b, &pr))
	require.Len(t, pr.Results, 3)
	assert.Equal(t, 9, pr.Results[0].Length)
	assert.Equal(t, []point{{2, 2}}, pr.Results[1].Path)
	assert.Equal(t, 0, pr.Results[2].Length)
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, "")
	resp, _ := do(t, http.MethodGet, ts.URL+"/grids/"+g.ID+"/path", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, b := do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `gridpath_search_total{outcome="found"} 1`)
	assert.Contains(t, string(b), "gridpath_grids 1")
}

func TestServer_ClearGrid(t *testing.T) {
	ts := newTestServer(t)
	g := createGrid(t, ts, "")

	for _, cell := range []string{"/cells/0/1", "/cells/1/1"} {
		resp, _ := do(t, http.MethodPut, ts.URL+"/grids/"+g.ID+cell, `{"state": "wall"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp, _ := do(t, http.MethodPost, ts.URL+"/grids/"+g.ID+"/clear", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, b := do(t, http.MethodGet, ts.URL+"/grids/"+g.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got gridResponse
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Empty(t, got.Walls)

	resp, _ = do(t, http.MethodPost, ts.URL+"/grids/unknown/clear", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_FindPathsClientGone(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := config.Default()
	srv := New(cfg, logger, prometheus.NewRegistry())

	id, err := srv.store.Create(3, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	body := `{"queries": [{"start": [0, 0], "finish": [2, 2]}]}`
	req := httptest.NewRequest(http.MethodPost, "/grids/"+id+"/paths", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, statusClientClosedRequest, rec.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{context.Canceled, statusClientClosedRequest},
		{ErrGridNotFound, http.StatusNotFound},
		{ErrGridTooLarge, http.StatusBadRequest},
		{badRequest{errors.New("bad coordinate")}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), "%v", c.err)
	}
}
