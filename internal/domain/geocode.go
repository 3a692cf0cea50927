package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding fills in what the user left out of a valid record:
// coordinates from the place name, or a place name from coordinates. If
// geocoder is nil or the lookup fails, the event is returned unchanged
// (graceful degradation — a record without coordinates is still a record).
func EnrichWithGeocoding(ctx context.Context, event Event, geocoder Geocoder, logger *slog.Logger) Event {
	if geocoder == nil {
		return event
	}

	hasCoords := event.HasCoordinates()
	hasPlace := event.Place != ""

	// Forward geocode: place name → coordinates (when coords are missing).
	if !hasCoords && hasPlace {
		result, err := geocoder.ForwardGeocode(ctx, event.Place)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"place", event.Place,
				"error", err,
			)
			return event
		}
		if result.Lat != 0 || result.Lon != 0 {
			lat, lon := result.Lat, result.Lon
			event.Latitude = &lat
			event.Longitude = &lon
		}
		return event
	}

	// Reverse geocode: coordinates → place name (when the place is blank).
	if hasCoords && !hasPlace {
		result, err := geocoder.ReverseGeocode(ctx, *event.Latitude, *event.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"lat", *event.Latitude,
				"lon", *event.Longitude,
				"error", err,
			)
			return event
		}
		if result.PlaceName != "" {
			event.Place = result.PlaceName
		}
		return event
	}

	return event
}
