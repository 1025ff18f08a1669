package http

import (
	"fmt"
	"html/template"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
)

// Chart geometry, in SVG user units.
const (
	chartWidth  = 320.0
	chartHeight = 260.0
	plotLeft    = 50.0
	plotRight   = 305.0
	plotTop     = 30.0
	plotBottom  = 215.0
	barFill     = 0.7 // fraction of each slot covered by its bar
)

var severityColors = map[string]string{
	"Low":      "green",
	"Moderate": "orange",
	"Severe":   "red",
}

// severityColor returns the bar color for a label; unknown labels are gray.
func severityColor(label string) string {
	if c, ok := severityColors[label]; ok {
		return c
	}
	return "gray"
}

type chartBar struct {
	Label       string
	Color       string
	Probability float64
	X, Y        float64
	Width       float64
	Height      float64
	CenterX     float64
}

type chartTick struct {
	Value float64
	Y     float64
}

type chartView struct {
	Title                                    string
	TitleX                                   float64
	Width, Height                            float64
	PlotLeft, PlotRight, PlotTop, PlotBottom float64
	Bars                                     []chartBar
	Ticks                                    []chartTick
}

// buildChart lays out one bar per class with the y-axis fixed to [0, 1].
func buildChart(result domain.PredictionResult) chartView {
	view := chartView{
		Title:      "Prediction: " + result.Label,
		TitleX:     (plotLeft + plotRight) / 2,
		Width:      chartWidth,
		Height:     chartHeight,
		PlotLeft:   plotLeft,
		PlotRight:  plotRight,
		PlotTop:    plotTop,
		PlotBottom: plotBottom,
	}

	plotH := plotBottom - plotTop
	for i := 0; i <= 5; i++ {
		v := float64(i) / 5
		view.Ticks = append(view.Ticks, chartTick{Value: v, Y: plotBottom - v*plotH})
	}

	n := len(result.Classes)
	if n == 0 {
		return view
	}
	slot := (plotRight - plotLeft) / float64(n)
	for i, class := range result.Classes {
		p := 0.0
		if i < len(result.Probabilities) {
			p = min(max(result.Probabilities[i], 0), 1)
		}
		h := p * plotH
		x := plotLeft + float64(i)*slot + slot*(1-barFill)/2
		view.Bars = append(view.Bars, chartBar{
			Label:       class,
			Color:       severityColor(class),
			Probability: p,
			X:           x,
			Y:           plotBottom - h,
			Width:       slot * barFill,
			Height:      h,
			CenterX:     x + slot*barFill/2,
		})
	}
	return view
}

var templateFuncs = template.FuncMap{
	"coord": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"tick":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
}
