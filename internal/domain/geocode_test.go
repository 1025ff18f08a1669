package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
	lat    float64
	lon    float64
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, lat, lon float64) (GeocodingResult, error) {
	m.calls++
	m.lat, m.lon = lat, lon
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAssessment() Assessment {
	return Assessment{
		ID:     "quake-1",
		Record: californiaRecord(),
		Result: PredictionResult{Label: "Severe", Classes: severityClasses, Probabilities: []float64{0.1, 0.2, 0.7}},
	}
}

// --- tests ---

func TestEnrichWithPlace_NilGeocoder(t *testing.T) {
	a := EnrichWithPlace(context.Background(), testAssessment(), nil, discardLogger())
	assert.Empty(t, a.GeoSource)
	assert.Empty(t, a.PlaceName)
}

func TestEnrichWithPlace_Reverse(t *testing.T) {
	geo := &mockGeocoder{
		result: GeocodingResult{
			FormattedAddress: "San Luis Obispo County, California, United States",
			PlaceName:        "San Luis Obispo County",
			Confidence:       0.9,
		},
	}

	a := EnrichWithPlace(context.Background(), testAssessment(), geo, discardLogger())

	assert.Equal(t, "reverse", a.GeoSource)
	assert.Equal(t, "San Luis Obispo County", a.PlaceName)
	assert.Equal(t, "San Luis Obispo County, California, United States", a.FormattedAddress)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, 35.0, geo.lat)
	assert.Equal(t, -120.0, geo.lon)
}

func TestEnrichWithPlace_Error_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}

	before := testAssessment()
	a := EnrichWithPlace(context.Background(), before, geo, discardLogger())

	assert.Equal(t, "failed", a.GeoSource)
	assert.Empty(t, a.PlaceName)
	assert.Equal(t, before.Result, a.Result, "prediction must not change")
}

func TestEnrichWithPlace_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{} // open ocean: nothing found

	a := EnrichWithPlace(context.Background(), testAssessment(), geo, discardLogger())

	assert.Equal(t, "none", a.GeoSource)
	assert.Empty(t, a.FormattedAddress)
}
