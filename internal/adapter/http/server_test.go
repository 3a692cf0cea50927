package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/observability"
	"github.com/lagunalabs/sucesos/internal/recorder"
	"github.com/lagunalabs/sucesos/internal/store"
)

func newTestServer(t *testing.T, allowWrite bool) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := store.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })

	repo := store.NewRepository(db)
	metrics := observability.NewMetricsForTesting()
	rec := recorder.New(repo, nil, allowWrite, logger, metrics)
	return NewServer(":0", repo, rec, logger, metrics)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func postEvent(t *testing.T, s *Server, date, category string, severity int, extra string) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"category":%q,"severity":%d%s}`, date, category, severity, extra)
	return doRequest(t, s, http.MethodPost, "/api/events", body)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestIndexServesUI(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Municipal Event Registry")
}

func TestCreateEvent_RoundTrip(t *testing.T) {
	s := newTestServer(t, true)

	w := postEvent(t, s, "2026-03-01", "Flood", 4, `,"place":"Alameda","impact":"Streets flooded"`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created eventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2026-03-01", created.Date)
	assert.Equal(t, "Flood", created.Category)

	w = doRequest(t, s, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []eventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "Alameda", listed[0].Place)
}

func TestCreateEvent_ReadOnlyMode(t *testing.T) {
	s := newTestServer(t, false)

	w := postEvent(t, s, "2026-03-01", "Flood", 3, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/events", "")
	var listed []eventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestCreateEvent_ValidationFailure(t *testing.T) {
	s := newTestServer(t, true)

	w := postEvent(t, s, "2026-03-01", "Flood", 9, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "severity")
}

func TestCreateEvent_BadDate(t *testing.T) {
	s := newTestServer(t, true)

	w := postEvent(t, s, "03/01/2026", "Flood", 3, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestListEvents_FilteredAndSorted(t *testing.T) {
	s := newTestServer(t, true)

	require.Equal(t, http.StatusCreated, postEvent(t, s, "2024-05-01", "Flood", 3, "").Code)
	require.Equal(t, http.StatusCreated, postEvent(t, s, "2026-02-01", "Flood", 2, "").Code)
	require.Equal(t, http.StatusCreated, postEvent(t, s, "2025-07-01", "Blackout", 1, "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/events?category=Flood", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []eventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "2026-02-01", listed[0].Date, "newest first")
	assert.Equal(t, "2024-05-01", listed[1].Date)

	w = doRequest(t, s, http.MethodGet, "/api/events?year=2025", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Blackout", listed[0].Category)
}

func TestListEvents_InvalidYear(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(t, s, http.MethodGet, "/api/events?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventsMeta(t *testing.T) {
	s := newTestServer(t, true)

	require.Equal(t, http.StatusCreated, postEvent(t, s, "2025-07-01", "Blackout", 1, "").Code)
	require.Equal(t, http.StatusCreated, postEvent(t, s, "2026-02-01", "Flood", 2, "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/events/meta", "")
	require.Equal(t, http.StatusOK, w.Code)

	var meta struct {
		Categories          []string `json:"categories"`
		Years               []int    `json:"years"`
		SuggestedCategories []string `json:"suggested_categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Equal(t, []string{"Blackout", "Flood"}, meta.Categories)
	assert.Equal(t, []int{2025, 2026}, meta.Years)
	assert.Equal(t, domain.SuggestedCategories, meta.SuggestedCategories)
}

func TestFrequencyEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	require.Equal(t, http.StatusCreated, postEvent(t, s, "2025-01-01", "Flood", 3, "").Code)
	require.Equal(t, http.StatusCreated, postEvent(t, s, "2025-06-01", "Flood", 3, "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/report/frequency", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Series []struct {
			Year     int    `json:"year"`
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Series, 1)
	assert.Equal(t, 2025, resp.Series[0].Year)
	assert.Equal(t, 2, resp.Series[0].Count)
}

func TestProbabilitiesEndpoint(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	s := newTestServer(t, true)
	for year := 2022; year <= 2026; year++ {
		w := postEvent(t, s, fmt.Sprintf("%d-04-01", year), "Flood", 3, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, s, http.MethodGet, "/api/report/probabilities", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Estimates []struct {
			Category    string  `json:"category"`
			Count       int     `json:"count"`
			AnnualRate  float64 `json:"annual_rate"`
			Probability string  `json:"probability"`
		} `json:"estimates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Estimates, 1)
	assert.Equal(t, 5, resp.Estimates[0].Count)
	assert.Equal(t, 1.0, resp.Estimates[0].AnnualRate)
	assert.Equal(t, "63.2%", resp.Estimates[0].Probability)
}

func TestMarkersEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	require.Equal(t, http.StatusCreated,
		postEvent(t, s, "2026-02-01", "Flood", 5, `,"latitude":25.55,"longitude":-103.43`).Code)
	require.Equal(t, http.StatusCreated,
		postEvent(t, s, "2026-03-01", "Blackout", 2, "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/map/markers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Center  []float64 `json:"center"`
		Zoom    int       `json:"zoom"`
		Markers []struct {
			Lat      float64 `json:"lat"`
			Color    string  `json:"color"`
			Radius   float64 `json:"radius"`
			Category string  `json:"category"`
		} `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []float64{25.539, -103.448}, resp.Center)
	assert.Equal(t, 12, resp.Zoom)
	require.Len(t, resp.Markers, 1, "records without coordinates get no marker")
	assert.Equal(t, "red", resp.Markers[0].Color)
	assert.Equal(t, 11.0, resp.Markers[0].Radius)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, true)

	require.Equal(t, http.StatusCreated, postEvent(t, s, "2026-02-01", "Flood", 3, "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/export/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "events.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,category,subtype,place,latitude,longitude,severity,impact,source,notes", lines[0])
	assert.Contains(t, lines[1], "Flood")
}

func TestConfigEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	w := doRequest(t, s, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg struct {
		AllowWrite bool      `json:"allow_write"`
		MapCenter  []float64 `json:"map_center"`
		MapZoom    int       `json:"map_zoom"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.False(t, cfg.AllowWrite)
	assert.Equal(t, []float64{25.539, -103.448}, cfg.MapCenter)
	assert.Equal(t, 12, cfg.MapZoom)
}
