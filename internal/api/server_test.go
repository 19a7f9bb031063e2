package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/envfield/pkg/envfield"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	p, err := envfield.NewProvider(envfield.DefaultParameters(), nil)
	require.NoError(t, err)
	return &Server{Provider: p, Seed: 0, Workers: 2}
}

func TestHandleFactors(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/factors?x=0&y=0", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp factorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.VirtualLatitude)
	assert.GreaterOrEqual(t, resp.Shelf, -0.3)
	assert.LessOrEqual(t, resp.Shelf, 0.0)
}

func TestHandleFactorsOutsideDomain(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/factors?x=0&y=1.5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleFactorsBadParams(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	for _, target := range []string{
		"/api/v1/factors",
		"/api/v1/factors?x=0",
		"/api/v1/factors?x=abc&y=0",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestHandleGrid(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/grid?min_x=-1&min_y=-0.5&max_x=1&max_y=0.5&width=4&height=4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Width  int               `json:"width"`
		Height int               `json:"height"`
		Cells  []factorsResponse `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Width)
	assert.Equal(t, 4, resp.Height)
	// Whole window inside the default domain.
	assert.Len(t, resp.Cells, 16)
}

func TestHandleGridTooLarge(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/grid?min_x=-1&min_y=-0.5&max_x=1&max_y=0.5&width=1024&height=1024", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "seed")
	assert.Contains(t, resp, "gradient")
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	// Other IPs have their own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Greater(t, rl.RetryAfter("10.0.0.1"), 0)
}
