package domain

import (
	"fmt"
	"math"
	"slices"
)

// probabilityTolerance bounds how far a distribution's sum may drift from 1.
const probabilityTolerance = 1e-6

// Classifier is a fitted model that estimates class probabilities.
type Classifier interface {
	// Classes returns the class labels in the classifier's native order.
	Classes() []string
	// FeatureNames returns the input columns, in order, the model was fitted on.
	FeatureNames() []string
	// PredictProba returns one probability per class, in Classes order.
	PredictProba(x []float64) ([]float64, error)
}

// PredictionResult is the outcome of scoring one feature vector.
type PredictionResult struct {
	Label         string    `json:"label"`
	Classes       []string  `json:"classes"`
	Probabilities []float64 `json:"probabilities"`
}

// Probability returns the probability assigned to a class label.
func (r PredictionResult) Probability(label string) (float64, bool) {
	i := slices.Index(r.Classes, label)
	if i < 0 || i >= len(r.Probabilities) {
		return 0, false
	}
	return r.Probabilities[i], true
}

// Predict scores a feature vector. It fails with ErrShapeMismatch when the
// vector is not aligned with the classifier's fitted columns, and with
// ErrInvalidDistribution when the classifier output is not a distribution.
func Predict(features FeatureVector, clf Classifier) (PredictionResult, error) {
	if err := checkShape(features, clf.FeatureNames()); err != nil {
		return PredictionResult{}, err
	}

	probs, err := clf.PredictProba(slices.Clone(features.Values))
	if err != nil {
		return PredictionResult{}, fmt.Errorf("predict proba: %w", err)
	}

	classes := clf.Classes()
	if err := checkDistribution(probs, len(classes)); err != nil {
		return PredictionResult{}, err
	}

	return PredictionResult{
		Label:         classes[ArgMax(probs)],
		Classes:       slices.Clone(classes),
		Probabilities: probs,
	}, nil
}

// ArgMax returns the index of the largest value. Ties resolve to the first
// occurrence. It returns -1 for an empty slice.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

func checkShape(features FeatureVector, fitted []string) error {
	if features.Len() == 0 {
		return fmt.Errorf("%w: empty feature vector", ErrShapeMismatch)
	}
	if len(features.Values) != features.Len() {
		return fmt.Errorf("%w: %d columns but %d values", ErrShapeMismatch, features.Len(), len(features.Values))
	}
	if features.Len() != len(fitted) {
		return fmt.Errorf("%w: got %d features, classifier expects %d", ErrShapeMismatch, features.Len(), len(fitted))
	}
	for i, name := range fitted {
		if features.Columns[i] != name {
			return fmt.Errorf("%w: column %d is %q, classifier expects %q", ErrShapeMismatch, i, features.Columns[i], name)
		}
	}
	return nil
}

func checkDistribution(probs []float64, numClasses int) error {
	if numClasses == 0 {
		return fmt.Errorf("%w: classifier has no classes", ErrInvalidDistribution)
	}
	if len(probs) != numClasses {
		return fmt.Errorf("%w: got %d probabilities for %d classes", ErrInvalidDistribution, len(probs), numClasses)
	}
	var sum float64
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 {
			return fmt.Errorf("%w: probability %d is %g", ErrInvalidDistribution, i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("%w: probabilities sum to %g", ErrInvalidDistribution, sum)
	}
	return nil
}
