package http

import (
	"testing"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "green", severityColor("Low"))
	assert.Equal(t, "orange", severityColor("Moderate"))
	assert.Equal(t, "red", severityColor("Severe"))
	assert.Equal(t, "gray", severityColor("Extreme"))
}

func TestBuildChart(t *testing.T) {
	view := buildChart(domain.PredictionResult{
		Label:         "Moderate",
		Classes:       []string{"Low", "Moderate", "Severe"},
		Probabilities: []float64{0.25, 0.5, 0.25},
	})

	assert.Equal(t, "Prediction: Moderate", view.Title)
	require.Len(t, view.Bars, 3)
	require.Len(t, view.Ticks, 6)
	assert.Equal(t, plotBottom, view.Ticks[0].Y)
	assert.Equal(t, plotTop, view.Ticks[5].Y)

	plotH := plotBottom - plotTop
	for i, bar := range view.Bars {
		assert.InDelta(t, plotBottom, bar.Y+bar.Height, 1e-9, "bars stand on the x-axis")
		assert.GreaterOrEqual(t, bar.X, plotLeft)
		assert.LessOrEqual(t, bar.X+bar.Width, plotRight+1e-9)
		if i > 0 {
			assert.Greater(t, bar.X, view.Bars[i-1].X+view.Bars[i-1].Width, "bars do not overlap")
		}
	}
	assert.InDelta(t, 0.5*plotH, view.Bars[1].Height, 1e-9)
	assert.InDelta(t, 0.25*plotH, view.Bars[0].Height, 1e-9)
	assert.Equal(t, "orange", view.Bars[1].Color)
}

func TestBuildChart_ClampsOutOfRange(t *testing.T) {
	view := buildChart(domain.PredictionResult{
		Label:         "Low",
		Classes:       []string{"Low", "Severe"},
		Probabilities: []float64{1.2, -0.2},
	})
	require.Len(t, view.Bars, 2)
	assert.InDelta(t, plotBottom-plotTop, view.Bars[0].Height, 1e-9)
	assert.Zero(t, view.Bars[1].Height)
}

func TestBuildChart_NoClasses(t *testing.T) {
	view := buildChart(domain.PredictionResult{})
	assert.Empty(t, view.Bars)
	assert.Len(t, view.Ticks, 6)
}
