// Package domain models earthquake severity assessment.
//
// # Inputs
//
// A [RawRecord] is one form submission: magnitude, depth in kilometers,
// latitude, longitude and a free-text location. Numeric ranges mirror the
// form widgets:
//
//	magnitude   0 – 10
//	depth       0 – 700 km
//	latitude  -90 – 90
//	longitude -180 – 180
//
// # Feature alignment
//
// The classifier was fitted on a fixed, ordered column list, the
// [TrainingColumns]. Categorical fields are dummy-encoded into
// "<field><separator><value>" indicator columns, e.g. "location=California".
// When the training run elided a reference category (drop-first encoding),
// the elided value is recorded in the column artifact's [Encoding] and maps
// to the all-zero state here as well.
//
// [Adapt] encodes a record and reindexes it onto the training columns:
//
//	encoded:  magnitude=6.5 depth=10 latitude=35 longitude=-120 location=California=1
//	training: [magnitude depth latitude longitude location=Chile location=California]
//	vector:   [6.5 10 35 -120 0 1]
//
// Categories never seen during training have no training column and are
// dropped. The vector then carries no location signal; this is not an error.
//
// # Inference
//
// [Predict] scores a [FeatureVector] with a [Classifier] and returns the full
// probability distribution in the classifier's class order. The label is the
// argmax; ties resolve to the first class in that order.
//
// # ID Generation
//
// Assessment IDs are truncated SHA-256 hashes of the record's fields, so the
// same submission always produces the same ID. See [generateID].
package domain
