package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/export"
	"github.com/lagunalabs/sucesos/internal/geomap"
	"github.com/lagunalabs/sucesos/internal/recorder"
	"github.com/lagunalabs/sucesos/internal/report"
	"github.com/lagunalabs/sucesos/internal/store"
)

// eventRequest is a submission from the register form. Dates travel as
// "YYYY-MM-DD" strings on every external surface.
type eventRequest struct {
	Date      string   `json:"date"`
	Category  string   `json:"category"`
	Subtype   string   `json:"subtype"`
	Place     string   `json:"place"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Severity  int      `json:"severity"`
	Impact    string   `json:"impact"`
	Source    string   `json:"source"`
	Notes     string   `json:"notes"`
}

type eventResponse struct {
	ID        uint     `json:"id"`
	Date      string   `json:"date"`
	Category  string   `json:"category"`
	Subtype   string   `json:"subtype,omitempty"`
	Place     string   `json:"place,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Severity  int      `json:"severity"`
	Impact    string   `json:"impact,omitempty"`
	Source    string   `json:"source,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

func toResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Date:      e.Date.Format(domain.DateLayout),
		Category:  e.Category,
		Subtype:   e.Subtype,
		Place:     e.Place,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Severity:  e.Severity,
		Impact:    e.Impact,
		Source:    e.Source,
		Notes:     e.Notes,
	}
}

// parseFilter reads repeated "category" and "year" query parameters. Absent
// parameters become nil slices, which the report package treats as no
// constraint on that dimension.
func parseFilter(c *gin.Context) (report.Filter, error) {
	var f report.Filter

	if cats := c.QueryArray("category"); len(cats) > 0 {
		f.Categories = cats
	}
	for _, raw := range c.QueryArray("year") {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return report.Filter{}, fmt.Errorf("invalid year %q", raw)
		}
		f.Years = append(f.Years, y)
	}
	return f, nil
}

func (s *Server) loadFiltered(c *gin.Context) ([]domain.Event, bool) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	events, err := s.repo.LoadAll()
	if err != nil {
		s.logger.Error("load events failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return nil, false
	}
	return report.Apply(events, filter), true
}

func (s *Server) handleListEvents(c *gin.Context) {
	events, ok := s.loadFiltered(c)
	if !ok {
		return
	}
	report.SortByDateDesc(events)

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event := domain.Event{
		Category:  req.Category,
		Subtype:   req.Subtype,
		Place:     req.Place,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Severity:  req.Severity,
		Impact:    req.Impact,
		Source:    req.Source,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		event.Date = date
	}

	created, err := s.recorder.Record(c.Request.Context(), event)
	if err != nil {
		var storageErr *store.StorageError
		switch {
		case errors.Is(err, recorder.ErrWritesDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.As(err, &storageErr):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, toResponse(*created))
}

func (s *Server) handleEventsMeta(c *gin.Context) {
	events, err := s.repo.LoadAll()
	if err != nil {
		s.logger.Error("load events failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":           report.Categories(events),
		"years":                report.Years(events),
		"suggested_categories": domain.SuggestedCategories,
	})
}

func (s *Server) handleFrequency(c *gin.Context) {
	events, ok := s.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": report.FrequencySeries(events)})
}

func (s *Server) handleProbabilities(c *gin.Context) {
	events, err := s.repo.LoadAll()
	if err != nil {
		s.logger.Error("load events failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimates": domain.EstimateAnnualProbabilities(events)})
}

func (s *Server) handleMarkers(c *gin.Context) {
	events, ok := s.loadFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"center":  []float64{geomap.DefaultCenterLat, geomap.DefaultCenterLon},
		"zoom":    geomap.DefaultZoom,
		"markers": geomap.BuildMarkers(events),
	})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	events, ok := s.loadFiltered(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="events.csv"`)
	c.Status(http.StatusOK)

	if err := export.WriteCSV(c.Writer, events); err != nil {
		// Headers are already out; log and give up on this response.
		s.logger.Error("csv export failed", "error", err)
		return
	}
	s.metrics.CSVExports.Inc()
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"allow_write": s.recorder.AllowWrite(),
		"map_center":  []float64{geomap.DefaultCenterLat, geomap.DefaultCenterLon},
		"map_zoom":    geomap.DefaultZoom,
	})
}
