package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Adapt converts a raw record into the feature vector the classifier expects.
// The vector's columns are always exactly cols, in order. Encoded columns
// with no training counterpart are dropped and listed in Discarded.
func Adapt(raw RawRecord, cols TrainingColumns) FeatureVector {
	encoded, indicators := encodeRecord(raw, cols.Encoding())

	vec := FeatureVector{
		Columns: cols.Names(),
		Values:  make([]float64, cols.Len()),
	}
	for i, name := range vec.Columns {
		vec.Values[i] = encoded[name] // absent columns default to 0
	}

	for name := range encoded {
		if cols.Contains(name) {
			continue
		}
		vec.Discarded = append(vec.Discarded, name)
		if indicators[name] {
			vec.UnknownCategories = append(vec.UnknownCategories, name)
		}
	}
	sort.Strings(vec.Discarded)
	sort.Strings(vec.UnknownCategories)
	return vec
}

// encodeRecord dummy-encodes a record: numeric fields keep their value under
// their own name, each non-empty categorical value becomes a 1 under its
// indicator column unless it is the field's elided reference category. The
// second result holds the indicator column names.
func encodeRecord(raw RawRecord, enc Encoding) (map[string]float64, map[string]bool) {
	out := raw.numericFields()
	indicators := make(map[string]bool)
	for field, value := range raw.categoricalFields() {
		if value == "" || enc.isReference(field, value) {
			continue
		}
		name := enc.ColumnName(field, value)
		out[name] = 1
		indicators[name] = true
	}
	return out, indicators
}

// generateID produces a deterministic ID from the record's fields, so that
// resubmitting the same record yields the same assessment ID.
func generateID(raw RawRecord) string {
	input := fmt.Sprintf("%.4f|%.4f|%.4f|%.4f|%s", raw.Magnitude, raw.Depth, raw.Latitude, raw.Longitude, raw.Location)
	hash := sha256.Sum256([]byte(input))
	return "quake-" + hex.EncodeToString(hash[:8])
}
