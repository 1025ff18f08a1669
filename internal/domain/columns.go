package domain

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultSeparator joins a categorical field and its value into a column
// name, e.g. "location=California".
const DefaultSeparator = "="

// Encoding describes how categorical fields were dummy-encoded when the
// training columns were produced.
type Encoding struct {
	Separator string
	// DropFirst reports whether one reference category per field was elided.
	DropFirst bool
	// Reference maps a categorical field to its elided category.
	Reference map[string]string
}

// ColumnName synthesizes the indicator column for a categorical value.
func (e Encoding) ColumnName(field, value string) string {
	sep := e.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return field + sep + value
}

// isReference reports whether value is the elided category of field.
func (e Encoding) isReference(field, value string) bool {
	if !e.DropFirst {
		return false
	}
	ref, ok := e.Reference[field]
	return ok && ref == value
}

// TrainingColumns is the ordered column set the classifier was fitted on.
// It is immutable once constructed.
type TrainingColumns struct {
	names    []string
	index    map[string]int
	encoding Encoding
}

// NewTrainingColumns builds a column set. Names must be unique; an empty set
// is allowed and yields empty feature vectors.
func NewTrainingColumns(names []string, enc Encoding) (TrainingColumns, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return TrainingColumns{}, fmt.Errorf("training column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return TrainingColumns{}, fmt.Errorf("duplicate training column %q", name)
		}
		index[name] = i
	}
	enc.Reference = maps.Clone(enc.Reference)
	return TrainingColumns{
		names:    slices.Clone(names),
		index:    index,
		encoding: enc,
	}, nil
}

// Names returns a copy of the column names in training order.
func (c TrainingColumns) Names() []string { return slices.Clone(c.names) }

// Len returns the number of columns.
func (c TrainingColumns) Len() int { return len(c.names) }

// Contains reports whether name is a training column.
func (c TrainingColumns) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Encoding returns the categorical encoding the columns were produced with.
func (c TrainingColumns) Encoding() Encoding {
	enc := c.encoding
	enc.Reference = maps.Clone(c.encoding.Reference)
	return enc
}

// FeatureVector is a record aligned onto the training columns.
type FeatureVector struct {
	Columns []string
	Values  []float64
	// Discarded lists encoded columns that have no training column, e.g. the
	// indicator for a category never seen during training.
	Discarded []string
	// UnknownCategories is the subset of Discarded produced by categorical
	// values, i.e. categories the classifier was never trained on.
	UnknownCategories []string
}

// Len returns the number of columns in the vector.
func (v FeatureVector) Len() int { return len(v.Columns) }

// Value returns the value of a named column.
func (v FeatureVector) Value(name string) (float64, bool) {
	i := slices.Index(v.Columns, name)
	if i < 0 {
		return 0, false
	}
	return v.Values[i], true
}
