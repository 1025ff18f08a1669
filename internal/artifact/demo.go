package artifact

import (
	"errors"
	"slices"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
)

// SeverityClasses is the class order of the reference model.
var SeverityClasses = []string{"Low", "Moderate", "Severe"}

// DemoLocations are the location categories of the reference model.
var DemoLocations = []string{
	"Alaska", "California", "Chile", "Indonesia", "Japan",
	"Mexico", "Nepal", "Peru", "Philippines", "Turkey",
}

var numericColumns = []string{"magnitude", "depth", "latitude", "longitude"}

// Per-class weights of the reference model: intercept, magnitude, depth and
// one shared weight for every non-reference location indicator.
var demoWeights = map[string]struct {
	intercept, magnitude, depth, location float64
}{
	"Low":      {intercept: 9, magnitude: -2.0, depth: 0.004, location: -0.25},
	"Moderate": {},
	"Severe":   {intercept: -11, magnitude: 2.0, depth: -0.004, location: 0.25},
}

// NewDemoModel builds the reference artifact pair: a multinomial logistic
// model over the numeric fields plus drop-first location indicators. The
// lexically first location is the elided reference category.
func NewDemoModel(locations []string, sep string) (*LogisticModel, domain.TrainingColumns, error) {
	if len(locations) == 0 {
		return nil, domain.TrainingColumns{}, errors.New("at least one location is required")
	}
	locs := slices.Clone(locations)
	slices.Sort(locs)
	locs = slices.Compact(locs)

	enc := domain.Encoding{
		Separator: sep,
		DropFirst: true,
		Reference: map[string]string{"location": locs[0]},
	}

	names := slices.Clone(numericColumns)
	for _, loc := range locs[1:] {
		names = append(names, enc.ColumnName("location", loc))
	}

	cols, err := domain.NewTrainingColumns(names, enc)
	if err != nil {
		return nil, domain.TrainingColumns{}, err
	}

	coefficients := make([][]float64, len(SeverityClasses))
	intercepts := make([]float64, len(SeverityClasses))
	for k, class := range SeverityClasses {
		w := demoWeights[class]
		row := make([]float64, len(names))
		row[0] = w.magnitude
		row[1] = w.depth
		for j := len(numericColumns); j < len(names); j++ {
			row[j] = w.location
		}
		coefficients[k] = row
		intercepts[k] = w.intercept
	}

	model, err := NewLogisticModel(KindMultinomialLogistic, SeverityClasses, names, coefficients, intercepts)
	if err != nil {
		return nil, domain.TrainingColumns{}, err
	}
	return model, cols, nil
}
