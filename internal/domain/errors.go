package domain

import "errors"

var (
	// ErrArtifactLoad marks a missing, corrupt or unsupported model or column
	// artifact. The process cannot serve predictions without both.
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrShapeMismatch means a feature vector does not have the columns, in
	// order, that the classifier was fitted on.
	ErrShapeMismatch = errors.New("feature shape mismatch")

	// ErrInvalidDistribution means a classifier returned probabilities that
	// are not a distribution over its classes.
	ErrInvalidDistribution = errors.New("invalid probability distribution")

	// ErrOutOfRange means a record field lies outside its input bounds.
	ErrOutOfRange = errors.New("value out of range")
)
