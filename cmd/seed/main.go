// Command seed populates a registry database with a deterministic sample
// dataset spanning several years and categories. It runs submissions through
// the real recorder, so seeded data matches what the service itself would
// store.
//
// Usage:
//
//	go run ./cmd/seed -db ./data/sucesos.db
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/observability"
	"github.com/lagunalabs/sucesos/internal/recorder"
	"github.com/lagunalabs/sucesos/internal/store"
)

type sample struct {
	date     string
	category string
	subtype  string
	place    string
	lat, lon float64 // 0,0 means no coordinates
	severity int
	impact   string
}

var samples = []sample{
	{"2022-06-14", "Flood", "flash flood", "Colonia Nueva California", 25.5612, -103.4210, 4, "Two avenues impassable for a day, eleven homes flooded"},
	{"2022-08-03", "Blackout", "substation failure", "Centro", 25.5393, -103.4483, 3, "Four-hour outage across downtown"},
	{"2023-03-21", "Protest", "road blockade", "Periférico y Bulevar Revolución", 25.5521, -103.4065, 2, "Traffic diverted for six hours"},
	{"2023-07-09", "Flood", "urban runoff", "Línea Verde", 25.5689, -103.3897, 3, "Underpass closed, one vehicle stranded"},
	{"2024-01-17", "Earthquake", "", "", 0, 0, 2, "Light shaking reported, no damage"},
	{"2024-05-30", "Blackout", "heat-driven demand", "Torreón Jardín", 25.5287, -103.4129, 3, "Rolling outages during heat wave"},
	{"2024-09-12", "Flood", "river overflow", "Vega del Caracol", 25.5214, -103.4671, 5, "Evacuation of riverside settlements, two bridges closed"},
	{"2025-02-08", "Pandemic", "respiratory outbreak", "", 0, 0, 3, "School closures for two weeks"},
	{"2025-06-25", "Flood", "flash flood", "Avenida Juárez", 25.5405, -103.4390, 3, "Street flooding after 60mm in one hour"},
	{"2025-11-04", "Landslide", "slope failure", "Cerro de las Noas", 25.5198, -103.4442, 4, "Road to the summit closed, one structure damaged"},
	{"2026-04-19", "Protest", "march", "Plaza Mayor", 25.5414, -103.4468, 1, "Peaceful march, streets closed for three hours"},
	{"2026-07-02", "Blackout", "storm damage", "La Rosita", 25.5556, -103.3981, 2, "Scattered outages overnight"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dbPath := flag.String("db", "./data/sucesos.db", "path to the registry database")
	quiet := flag.Bool("quiet", false, "suppress per-record output")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !*quiet {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	db, err := store.Open(*dbPath, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close(db) //nolint:errcheck // best-effort close on exit

	repo := store.NewRepository(db)
	rec := recorder.New(repo, nil, true, logger, observability.NewMetricsForTesting())

	existing, err := repo.Count()
	if err != nil {
		return fmt.Errorf("count existing records: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("database already has %d records; seed only fills empty databases", existing)
	}

	ctx := context.Background()
	byCategory := map[string]int{}

	for _, s := range samples {
		date, err := time.Parse(domain.DateLayout, s.date)
		if err != nil {
			return fmt.Errorf("sample %q: %w", s.date, err)
		}

		event := domain.Event{
			Date:     date,
			Category: s.category,
			Subtype:  s.subtype,
			Place:    s.place,
			Severity: s.severity,
			Impact:   s.impact,
			Source:   "seed dataset",
		}
		if s.lat != 0 || s.lon != 0 {
			lat, lon := s.lat, s.lon
			event.Latitude = &lat
			event.Longitude = &lon
		}

		created, err := rec.Record(ctx, event)
		if err != nil {
			return fmt.Errorf("record %s %s: %w", s.date, s.category, err)
		}
		byCategory[created.Category]++
	}

	fmt.Printf("Seeded %d records into %s\n", len(samples), *dbPath)
	for _, c := range domain.SuggestedCategories {
		if n := byCategory[c]; n > 0 {
			fmt.Printf("  %-12s %d\n", c, n)
		}
	}
	return nil
}
