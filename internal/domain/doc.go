// Package domain models logged catastrophic and disruptive events for a
// single municipality (floods, blackouts, earthquakes, protests, and so on).
//
// # Event records
//
// An Event is one logged occurrence with a calendar date, a category, an
// optional WGS-84 coordinate pair, and a subjective severity rating from 1
// (minor disruption) to 5 (major disaster) assigned at entry time. Records
// are append-only: once stored they are never mutated or deleted, and the
// store-assigned ID is immutable.
//
// Category is free text, but entry forms offer a fixed suggested set
// ([SuggestedCategories]) so historical data groups cleanly. Latitude,
// longitude, and all descriptive text fields are optional; consumers must
// tolerate nil coordinates and empty strings.
//
// # Annual-probability estimate
//
// [EstimateAnnualProbabilities] derives, per category, the probability of at
// least one occurrence in a year from the trailing five calendar years of
// records (inclusive of the current year):
//
//	rate        = count in window / 5
//	probability = 1 - e^(-rate)
//
// This assumes yearly occurrence counts follow a Poisson distribution with a
// constant annual rate. It is a frequency summary for civil-protection
// planning, not a rigorous risk model: five floods in five years yields a
// rate of 1.0 and a 63.2% chance of at least one flood next year.
//
// The window is anchored on the current date via a package-level clockwork
// clock so tests can freeze time with [SetClock].
package domain
