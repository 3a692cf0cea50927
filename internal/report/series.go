package report

import (
	"sort"

	"github.com/lagunalabs/sucesos/internal/domain"
)

// SeriesPoint is one (year, category) bucket of the frequency chart: one
// line per category, x-axis year, y-axis count.
type SeriesPoint struct {
	Year     int    `json:"year"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FrequencySeries groups events by (year, category) and returns the counts
// sorted by year then category. Zero matching records yields an empty slice;
// the caller skips the chart instead of failing.
func FrequencySeries(events []domain.Event) []SeriesPoint {
	type bucket struct {
		year     int
		category string
	}

	counts := make(map[bucket]int)
	for i := range events {
		counts[bucket{events[i].Year(), events[i].Category}]++
	}

	points := make([]SeriesPoint, 0, len(counts))
	for b, n := range counts {
		points = append(points, SeriesPoint{Year: b.year, Category: b.category, Count: n})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Category < points[j].Category
	})

	return points
}
