// Package export serializes event records to and from CSV. The header row
// matches the stored column names, so an export can be re-imported (see
// cmd/importcsv) or opened directly in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lagunalabs/sucesos/internal/domain"
)

// Header is the CSV header row, one column per stored field.
var Header = []string{
	"id", "date", "category", "subtype", "place",
	"latitude", "longitude", "severity", "impact", "source", "notes",
}

// WriteCSV writes events as UTF-8 CSV with a header row, one row per record.
func WriteCSV(w io.Writer, events []domain.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range events {
		e := &events[i]
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Date.Format(domain.DateLayout),
			e.Category,
			e.Subtype,
			e.Place,
			formatCoord(e.Latitude),
			formatCoord(e.Longitude),
			strconv.Itoa(e.Severity),
			e.Impact,
			e.Source,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a CSV produced by WriteCSV back into records. The header
// must match exactly; a malformed date, severity, or coordinate fails the
// whole read (no partial result).
func ReadCSV(r io.Reader) ([]domain.Event, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected csv header: got %d columns, want %d", len(header), len(Header))
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected csv header: column %d is %q, want %q", i+1, header[i], col)
		}
	}

	events := make([]domain.Event, 0)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		event, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		events = append(events, event)
	}

	return events, nil
}

func parseRow(row []string) (domain.Event, error) {
	id, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse id %q: %w", row[0], err)
	}

	date, err := time.Parse(domain.DateLayout, row[1])
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse date %q: %w", row[1], err)
	}

	severity, err := strconv.Atoi(row[7])
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse severity %q: %w", row[7], err)
	}

	lat, err := parseCoord(row[5])
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse latitude %q: %w", row[5], err)
	}
	lon, err := parseCoord(row[6])
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse longitude %q: %w", row[6], err)
	}

	return domain.Event{
		ID:        uint(id),
		Date:      date,
		Category:  row[2],
		Subtype:   row[3],
		Place:     row[4],
		Latitude:  lat,
		Longitude: lon,
		Severity:  severity,
		Impact:    row[8],
		Source:    row[9],
		Notes:     row[10],
	}, nil
}

// formatCoord renders a coordinate with minimal digits; an absent coordinate
// becomes an empty cell.
func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
