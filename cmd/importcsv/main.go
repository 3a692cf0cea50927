// Command importcsv loads records from a CSV export into a registry
// database. Rows are validated with the same rules the service applies to
// form submissions; invalid rows are reported and skipped, and the exit code
// reflects whether every row imported cleanly.
//
// Usage:
//
//	go run ./cmd/importcsv -db ./data/sucesos.db -csv events.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/export"
	"github.com/lagunalabs/sucesos/internal/store"
)

func main() {
	dbPath := flag.String("db", "./data/sucesos.db", "path to the registry database")
	csvPath := flag.String("csv", "", "path to the CSV file to import")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*dbPath, *csvPath))
}

func run(dbPath, csvPath string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open CSV: %v\n", err)
		return 1
	}
	defer f.Close()

	events, err := export.ReadCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse CSV: %v\n", err)
		return 1
	}

	db, err := store.Open(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open database: %v\n", err)
		return 1
	}
	defer store.Close(db) //nolint:errcheck // best-effort close on exit

	repo := store.NewRepository(db)

	var imported, skipped int
	for i, event := range events {
		// IDs from the export belong to the source database; the store
		// assigns fresh ones here.
		event.ID = 0

		if err := event.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "  row %d: invalid record: %v\n", i+2, err)
			skipped++
			continue
		}
		if err := repo.Insert(&event); err != nil {
			fmt.Fprintf(os.Stderr, "  row %d: insert failed: %v\n", i+2, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d records into %s", imported, dbPath)
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()

	printStats(events)

	if skipped > 0 {
		return 1
	}
	return 0
}

func printStats(events []domain.Event) {
	byCategory := map[string]int{}
	withCoords := 0
	for i := range events {
		byCategory[events[i].Category]++
		if events[i].HasCoordinates() {
			withCoords++
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Printf("By category:")
	for _, c := range categories {
		fmt.Printf(" %s=%d", c, byCategory[c])
	}
	fmt.Println()
	fmt.Printf("With coordinates: %d of %d\n", withCoords, len(events))
}
