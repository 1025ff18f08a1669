package domain

import (
	"context"
	"log/slog"
)

// EnrichWithPlace reverse-geocodes the assessment's coordinates for display.
// If geocoder is nil the assessment is returned unchanged; on failure it is
// returned with GeoSource "failed". The prediction itself is never touched.
func EnrichWithPlace(ctx context.Context, a Assessment, geocoder Geocoder, logger *slog.Logger) Assessment {
	if geocoder == nil {
		return a
	}

	result, err := geocoder.ReverseGeocode(ctx, a.Record.Latitude, a.Record.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"assessment_id", a.ID,
			"lat", a.Record.Latitude,
			"lon", a.Record.Longitude,
			"error", err,
		)
		a.GeoSource = "failed"
		return a
	}
	if result.FormattedAddress == "" {
		a.GeoSource = "none"
		return a
	}

	a.PlaceName = result.PlaceName
	a.FormattedAddress = result.FormattedAddress
	a.GeoSource = "reverse"
	return a
}
