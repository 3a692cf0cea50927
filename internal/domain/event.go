package domain

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on every external surface:
// entry forms, the JSON API, and CSV export.
const DateLayout = "2006-01-02"

// SuggestedCategories is the fixed set offered by entry forms. Category is
// stored as free text, so values outside this list are accepted.
var SuggestedCategories = []string{
	"Flood",
	"Blackout",
	"Earthquake",
	"Pandemic",
	"Protest",
	"Landslide",
	"Other",
}

// Validation failures caught before insert. These are user errors, never
// storage errors: the caller prompts for corrected input and nothing is
// written.
var (
	ErrDateRequired        = errors.New("date is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrSeverityOutOfRange  = errors.New("severity must be between 1 and 5")
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// Event is one logged catastrophic or disruptive occurrence. Records are
// append-only; ID is assigned by the store on insert and never changes.
// Latitude and Longitude are pointers because many historical records carry
// no coordinates at all.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Category  string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Subtype   string    `gorm:"type:varchar(200)" json:"subtype,omitempty"`
	Place     string    `gorm:"type:varchar(200)" json:"place,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Severity  int       `gorm:"not null" json:"severity"`
	Impact    string    `gorm:"type:text" json:"impact,omitempty"`
	Source    string    `gorm:"type:text" json:"source,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name independent of GORM pluralization rules.
func (Event) TableName() string { return "events" }

// Year returns the calendar year of the event date.
func (e *Event) Year() int { return e.Date.Year() }

// HasCoordinates reports whether both latitude and longitude are present.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Validate checks the invariants a record must satisfy before it may be
// stored: date and category present, severity in [1,5], and coordinates, if
// given, within WGS-84 bounds. Optional fields are never an error.
func (e *Event) Validate() error {
	if e.Date.IsZero() {
		return ErrDateRequired
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrCategoryRequired
	}
	if e.Severity < 1 || e.Severity > 5 {
		return ErrSeverityOutOfRange
	}
	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		return ErrLatitudeOutOfRange
	}
	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		return ErrLongitudeOutOfRange
	}
	return nil
}
