// Package geomap turns stored records into map markers. One marker per
// record with both coordinates present; no clustering, no spatial indexing.
package geomap

import (
	"github.com/lagunalabs/sucesos/internal/domain"
)

// Default view for the map tab, centered on Torreón.
const (
	DefaultCenterLat = 25.539
	DefaultCenterLon = -103.448
	DefaultZoom      = 12
)

const (
	// baseRadius plus severity gives the visual radius in pixels, so a
	// severity-5 record is always strictly larger than a severity-1 record.
	baseRadius = 6

	// highSeverityThreshold splits markers into two color buckets.
	highSeverityThreshold = 4

	// impactPopupLimit caps the impact description shown in the popup.
	impactPopupLimit = 100
)

// Marker is one point on the map view, sized by severity and colored by the
// two-bucket severity threshold.
type Marker struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Place    string  `json:"place,omitempty"`
	Severity int     `json:"severity"`
	Impact   string  `json:"impact,omitempty"`
}

// BuildMarkers renders one marker per record that carries both coordinates.
// Records missing either coordinate are skipped silently; they are valid
// records that simply have no place on the map.
func BuildMarkers(events []domain.Event) []Marker {
	markers := make([]Marker, 0, len(events))
	for i := range events {
		e := &events[i]
		if !e.HasCoordinates() {
			continue
		}

		color := "orange"
		if e.Severity >= highSeverityThreshold {
			color = "red"
		}

		markers = append(markers, Marker{
			Lat:      *e.Latitude,
			Lon:      *e.Longitude,
			Radius:   float64(baseRadius + e.Severity),
			Color:    color,
			Category: e.Category,
			Date:     e.Date.Format(domain.DateLayout),
			Place:    e.Place,
			Severity: e.Severity,
			Impact:   truncate(e.Impact, impactPopupLimit),
		})
	}
	return markers
}

// truncate cuts s to at most limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
