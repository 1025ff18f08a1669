package artifact

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// ModelVersion is the model artifact format version this build reads.
const ModelVersion = 1

// Supported model kinds.
const (
	KindMultinomialLogistic = "multinomial_logistic"
	KindOVRLogistic         = "ovr_logistic"
)

// modelFile is the on-disk msgpack layout of a model artifact.
type modelFile struct {
	Version      int         `msgpack:"version"`
	Kind         string      `msgpack:"kind"`
	Classes      []string    `msgpack:"classes"`
	Features     []string    `msgpack:"features"`
	Coefficients [][]float64 `msgpack:"coefficients"` // one row per class
	Intercepts   []float64   `msgpack:"intercepts"`
}

// LogisticModel is a fitted linear classifier. It implements domain.Classifier
// and is safe for concurrent use; it is never mutated after construction.
type LogisticModel struct {
	kind         string
	classes      []string
	features     []string
	coefficients [][]float64
	intercepts   []float64
}

// NewLogisticModel validates dimensions and builds a model. coefficients has
// one row per class, each with one weight per feature.
func NewLogisticModel(kind string, classes, features []string, coefficients [][]float64, intercepts []float64) (*LogisticModel, error) {
	switch kind {
	case KindMultinomialLogistic, KindOVRLogistic:
	default:
		return nil, fmt.Errorf("unsupported model kind %q", kind)
	}
	if len(classes) == 0 {
		return nil, errors.New("model has no classes")
	}
	if len(features) == 0 {
		return nil, errors.New("model has no features")
	}
	if len(coefficients) != len(classes) {
		return nil, fmt.Errorf("got %d coefficient rows for %d classes", len(coefficients), len(classes))
	}
	if len(intercepts) != len(classes) {
		return nil, fmt.Errorf("got %d intercepts for %d classes", len(intercepts), len(classes))
	}
	rows := make([][]float64, len(coefficients))
	for i, row := range coefficients {
		if len(row) != len(features) {
			return nil, fmt.Errorf("coefficient row %d (%s) has %d weights for %d features", i, classes[i], len(row), len(features))
		}
		rows[i] = slices.Clone(row)
	}
	return &LogisticModel{
		kind:         kind,
		classes:      slices.Clone(classes),
		features:     slices.Clone(features),
		coefficients: rows,
		intercepts:   slices.Clone(intercepts),
	}, nil
}

// Kind returns the model kind.
func (m *LogisticModel) Kind() string { return m.kind }

// Classes returns the class labels in model order.
func (m *LogisticModel) Classes() []string { return slices.Clone(m.classes) }

// FeatureNames returns the fitted input columns in order.
func (m *LogisticModel) FeatureNames() []string { return slices.Clone(m.features) }

// PredictProba returns one probability per class.
func (m *LogisticModel) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(m.features) {
		return nil, fmt.Errorf("%w: got %d features, model expects %d", domain.ErrShapeMismatch, len(x), len(m.features))
	}

	scores := make([]float64, len(m.classes))
	for k, row := range m.coefficients {
		z := m.intercepts[k]
		for j, w := range row {
			z += w * x[j]
		}
		scores[k] = z
	}

	if m.kind == KindOVRLogistic {
		return normalizedSigmoid(scores), nil
	}
	return softmax(scores), nil
}

// softmax subtracts the max score before exponentiating to avoid overflow.
func softmax(scores []float64) []float64 {
	maxScore := scores[domain.ArgMax(scores)]
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// normalizedSigmoid scores each class independently and rescales the results
// to sum to one, the way one-vs-rest logistic regression reports probabilities.
func normalizedSigmoid(scores []float64) []float64 {
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = 1 / (1 + math.Exp(-s))
		sum += out[i]
	}
	if sum == 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// LoadModel reads a msgpack model artifact.
func LoadModel(path string) (*LogisticModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open model %s: %w", domain.ErrArtifactLoad, path, err)
	}
	defer f.Close()

	var mf modelFile
	if err := msgpack.NewDecoder(f).Decode(&mf); err != nil {
		return nil, fmt.Errorf("%w: decode model %s: %w", domain.ErrArtifactLoad, path, err)
	}
	if mf.Version != ModelVersion {
		return nil, fmt.Errorf("%w: model %s has version %d, want %d", domain.ErrArtifactLoad, path, mf.Version, ModelVersion)
	}

	model, err := NewLogisticModel(mf.Kind, mf.Classes, mf.Features, mf.Coefficients, mf.Intercepts)
	if err != nil {
		return nil, fmt.Errorf("%w: model %s: %w", domain.ErrArtifactLoad, path, err)
	}
	return model, nil
}

// WriteModel encodes a model as a msgpack artifact.
func WriteModel(path string, m *LogisticModel) error {
	mf := modelFile{
		Version:      ModelVersion,
		Kind:         m.kind,
		Classes:      m.classes,
		Features:     m.features,
		Coefficients: m.coefficients,
		Intercepts:   m.intercepts,
	}
	data, err := msgpack.Marshal(&mf)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return writeFile(path, data)
}
