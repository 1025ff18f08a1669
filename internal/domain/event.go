package domain

import (
	"fmt"
	"math"
	"time"
)

// Input bounds enforced by the form widgets.
const (
	MinMagnitude = 0.0
	MaxMagnitude = 10.0
	MinDepth     = 0.0
	MaxDepth     = 700.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// RawRecord is one earthquake as entered on the form.
type RawRecord struct {
	Magnitude float64 `json:"magnitude"`
	Depth     float64 `json:"depth"` // kilometers
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Location  string  `json:"location"` // categorical, free text
}

// Validate checks every numeric field against its widget bounds (inclusive).
func (r RawRecord) Validate() error {
	fields := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"magnitude", r.Magnitude, MinMagnitude, MaxMagnitude},
		{"depth", r.Depth, MinDepth, MaxDepth},
		{"latitude", r.Latitude, MinLatitude, MaxLatitude},
		{"longitude", r.Longitude, MinLongitude, MaxLongitude},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < f.min || f.value > f.max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrOutOfRange, f.name, f.min, f.max, f.value)
		}
	}
	return nil
}

// numericFields returns the record's numeric features keyed by column name.
func (r RawRecord) numericFields() map[string]float64 {
	return map[string]float64{
		"magnitude": r.Magnitude,
		"depth":     r.Depth,
		"latitude":  r.Latitude,
		"longitude": r.Longitude,
	}
}

// categoricalFields returns the record's categorical features keyed by field name.
func (r RawRecord) categoricalFields() map[string]string {
	return map[string]string{
		"location": r.Location,
	}
}

// Assessment is a scored record, the unit rendered to the user and published
// downstream.
type Assessment struct {
	ID       string           `json:"id"`
	Record   RawRecord        `json:"record"`
	Result   PredictionResult `json:"result"`
	ScoredAt time.Time        `json:"scored_at"`

	// Reverse geocoding enrichment fields. Display only.
	PlaceName        string `json:"place_name,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
	GeoSource        string `json:"geo_source,omitempty"` // "reverse", "none", "failed"
}

// NewAssessment stamps a prediction for a record with its ID and score time.
func NewAssessment(raw RawRecord, result PredictionResult) Assessment {
	return Assessment{
		ID:       generateID(raw),
		Record:   raw,
		Result:   result,
		ScoredAt: clock.Now().UTC(),
	}
}
