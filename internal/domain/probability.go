package domain

import (
	"fmt"
	"math"
	"sort"
)

// estimateWindowYears is the trailing window the annual-rate estimate is
// computed over, inclusive of the current calendar year.
const estimateWindowYears = 5

// CategoryEstimate is one row of the probability table: how often a category
// occurred in the window and the Poisson-model chance of seeing it at least
// once in a year.
type CategoryEstimate struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	AnnualRate  float64 `json:"annual_rate"` // count/5, rounded to 2 decimals
	Probability string  `json:"probability"` // 1 - e^(-rate), formatted "63.2%"
}

// EstimateAnnualProbabilities restricts events to the most recent five
// calendar years (anchored on the package clock), groups them by category,
// and returns one estimate per category present in the window, sorted by
// count descending then category. Empty input yields an empty slice.
func EstimateAnnualProbabilities(events []Event) []CategoryEstimate {
	cutoffYear := clock.Now().Year() - (estimateWindowYears - 1)

	counts := make(map[string]int)
	for i := range events {
		if events[i].Date.Year() >= cutoffYear {
			counts[events[i].Category]++
		}
	}

	estimates := make([]CategoryEstimate, 0, len(counts))
	for category, n := range counts {
		rate := float64(n) / estimateWindowYears
		estimates = append(estimates, CategoryEstimate{
			Category:    category,
			Count:       n,
			AnnualRate:  math.Round(rate*100) / 100,
			Probability: fmt.Sprintf("%.1f%%", (1-math.Exp(-rate))*100),
		})
	}

	sort.Slice(estimates, func(i, j int) bool {
		if estimates[i].Count != estimates[j].Count {
			return estimates[i].Count > estimates[j].Count
		}
		return estimates[i].Category < estimates[j].Category
	})

	return estimates
}
