package artifact

import (
	"fmt"
	"slices"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
)

// Bundle is the process-wide, read-only artifact context: the classifier and
// the training columns it was fitted on. It is built once at startup and
// shared by reference.
type Bundle struct {
	Classifier  domain.Classifier
	Columns     domain.TrainingColumns
	ModelPath   string
	ColumnsPath string
}

// Load reads both artifacts. Any failure wraps domain.ErrArtifactLoad.
func Load(modelPath, columnsPath string) (*Bundle, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	cols, err := LoadColumns(columnsPath)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Classifier:  model,
		Columns:     cols,
		ModelPath:   modelPath,
		ColumnsPath: columnsPath,
	}, nil
}

// CheckCoherence reports whether the training columns match the columns the
// classifier was fitted on. A mismatch wraps domain.ErrShapeMismatch.
func (b *Bundle) CheckCoherence() error {
	fitted := b.Classifier.FeatureNames()
	names := b.Columns.Names()
	if slices.Equal(fitted, names) {
		return nil
	}
	if len(fitted) != len(names) {
		return fmt.Errorf("%w: column artifact has %d columns, model was fitted on %d", domain.ErrShapeMismatch, len(names), len(fitted))
	}
	for i := range fitted {
		if fitted[i] != names[i] {
			return fmt.Errorf("%w: column %d is %q in the column artifact but %q in the model", domain.ErrShapeMismatch, i, names[i], fitted[i])
		}
	}
	return nil
}
