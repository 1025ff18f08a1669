// Command validate loads a model and feature column artifact pair and checks
// that they score submissions correctly: the pair loads, the model and the
// columns agree, feature vectors align with the training columns, and
// predictions are valid, deterministic distributions.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -model earthquake_severity_model.msgpack \
//	  -columns feature_columns.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/quake-severity-service/internal/artifact"
	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
)

const probabilityTolerance = 1e-6

// scenario is one record pushed through adapt and predict.
type scenario struct {
	name string
	raw  domain.RawRecord
}

var scenarios = []scenario{
	{"california", domain.RawRecord{Magnitude: 6.5, Depth: 10, Latitude: 35, Longitude: -120, Location: "California"}},
	{"unknown location", domain.RawRecord{Magnitude: 6.5, Depth: 10, Latitude: 35, Longitude: -120, Location: "Atlantis"}},
	{"empty location", domain.RawRecord{Magnitude: 4.2, Depth: 33, Latitude: -10, Longitude: 110}},
	{"minimum magnitude", domain.RawRecord{Magnitude: 0, Depth: 0, Latitude: 0, Longitude: 0, Location: "Japan"}},
	{"maximum magnitude", domain.RawRecord{Magnitude: 10, Depth: 700, Latitude: 90, Longitude: 180, Location: "Chile"}},
	{"southwest corner", domain.RawRecord{Magnitude: 5, Depth: 350, Latitude: -90, Longitude: -180, Location: "Peru"}},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	modelPath := flag.String("model", "earthquake_severity_model.msgpack", "path to the model artifact")
	columnsPath := flag.String("columns", "feature_columns.yaml", "path to the feature column artifact")
	flag.Parse()

	if *modelPath == "" || *columnsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*modelPath, *columnsPath); code != 0 {
		os.Exit(code)
	}
}

func run(modelPath, columnsPath string) int {
	// Fixed clock so assessment timestamps are reproducible across runs.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Earthquake Severity Artifact Validation ===")
	fmt.Println()

	bundle, err := artifact.Load(modelPath, columnsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateCoherence(bundle),
		validateAlignment(bundle),
		validateLocationEncoding(bundle),
		validatePredictions(bundle),
		validateIdempotence(bundle),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Artifacts: %d training columns, classes %v\n",
		bundle.Columns.Len(), bundle.Classifier.Classes())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: model / column coherence ──

func validateCoherence(b *artifact.Bundle) *phase {
	p := &phase{name: "Phase 1: Model/Column Coherence"}
	fmt.Println("Phase 1: Checking the model was fitted on the training columns...")

	if err := b.CheckCoherence(); err != nil {
		p.errorf("%v", err)
	}
	if len(b.Classifier.Classes()) == 0 {
		p.errorf("model declares no classes")
	}
	return p
}

// ── Phase 2: feature vectors match the training columns exactly ──

func validateAlignment(b *artifact.Bundle) *phase {
	p := &phase{name: "Phase 2: Feature Alignment"}
	fmt.Println("Phase 2: Checking feature vectors align with the training columns...")

	want := b.Columns.Names()
	for _, sc := range scenarios {
		fv := domain.Adapt(sc.raw, b.Columns)
		if diff := cmp.Diff(want, fv.Columns); diff != "" {
			p.errorf("%s: columns differ from training columns (-want +got):\n%s", sc.name, diff)
			continue
		}
		if len(fv.Values) != len(want) {
			p.errorf("%s: %d values for %d columns", sc.name, len(fv.Values), len(want))
			continue
		}
		for _, check := range []struct {
			column string
			value  float64
		}{
			{"magnitude", sc.raw.Magnitude},
			{"depth", sc.raw.Depth},
			{"latitude", sc.raw.Latitude},
			{"longitude", sc.raw.Longitude},
		} {
			if !b.Columns.Contains(check.column) {
				continue
			}
			if got, _ := fv.Value(check.column); got != check.value {
				p.errorf("%s: column %s = %g, want %g", sc.name, check.column, got, check.value)
			}
		}
	}
	return p
}

// ── Phase 3: one-hot location columns ──

func validateLocationEncoding(b *artifact.Bundle) *phase {
	p := &phase{name: "Phase 3: Location Encoding"}
	fmt.Println("Phase 3: Checking one-hot location columns...")

	enc := b.Columns.Encoding()
	prefix := enc.ColumnName("location", "")
	var locationCols []string
	for _, name := range b.Columns.Names() {
		if strings.HasPrefix(name, prefix) {
			locationCols = append(locationCols, name)
		}
	}
	if len(locationCols) == 0 {
		fmt.Println("  no location columns in the training set, skipping")
		return p
	}

	for _, sc := range scenarios {
		fv := domain.Adapt(sc.raw, b.Columns)
		hot := ""
		if sc.raw.Location != "" {
			hot = enc.ColumnName("location", sc.raw.Location)
		}
		known := hot != "" && slices.Contains(locationCols, hot)
		for _, col := range locationCols {
			got, _ := fv.Value(col)
			want := 0.0
			if known && col == hot {
				want = 1
			}
			if got != want {
				p.errorf("%s: column %s = %g, want %g", sc.name, col, got, want)
			}
		}
	}
	return p
}

// ── Phase 4: predictions are valid distributions ──

func validatePredictions(b *artifact.Bundle) *phase {
	p := &phase{name: "Phase 4: Prediction Distributions"}
	fmt.Println("Phase 4: Checking predictions are valid probability distributions...")

	classes := b.Classifier.Classes()
	for _, sc := range scenarios {
		result, err := domain.Predict(domain.Adapt(sc.raw, b.Columns), b.Classifier)
		if err != nil {
			p.errorf("%s: predict: %v", sc.name, err)
			continue
		}
		if diff := cmp.Diff(classes, result.Classes); diff != "" {
			p.errorf("%s: classes differ from the model (-want +got):\n%s", sc.name, diff)
		}
		if len(result.Probabilities) != len(classes) {
			p.errorf("%s: %d probabilities for %d classes", sc.name, len(result.Probabilities), len(classes))
			continue
		}
		sum := 0.0
		for i, prob := range result.Probabilities {
			if prob < 0 || math.IsNaN(prob) {
				p.errorf("%s: probability of %s is %g", sc.name, classes[i], prob)
			}
			sum += prob
		}
		if math.Abs(sum-1) > probabilityTolerance {
			p.errorf("%s: probabilities sum to %.9f", sc.name, sum)
		}
		if best := domain.ArgMax(result.Probabilities); best < 0 || classes[best] != result.Label {
			p.errorf("%s: label %q is not the argmax of %v", sc.name, result.Label, result.Probabilities)
		}
		fmt.Printf("  %-20s → %-9s %v\n", sc.name, result.Label, formatProbs(result.Probabilities))
	}
	return p
}

// ── Phase 5: adapt and predict are deterministic ──

func validateIdempotence(b *artifact.Bundle) *phase {
	p := &phase{name: "Phase 5: Idempotence"}
	fmt.Println("Phase 5: Checking repeated scoring yields identical results...")

	for _, sc := range scenarios {
		first, err1 := domain.Predict(domain.Adapt(sc.raw, b.Columns), b.Classifier)
		second, err2 := domain.Predict(domain.Adapt(sc.raw, b.Columns), b.Classifier)
		if err1 != nil || err2 != nil {
			p.errorf("%s: predict errors %v / %v", sc.name, err1, err2)
			continue
		}
		if diff := cmp.Diff(first, second); diff != "" {
			p.errorf("%s: results differ between runs (-first +second):\n%s", sc.name, diff)
		}
		a, b2 := domain.NewAssessment(sc.raw, first), domain.NewAssessment(sc.raw, second)
		if a.ID != b2.ID {
			p.errorf("%s: assessment IDs differ: %s vs %s", sc.name, a.ID, b2.ID)
		}
	}
	return p
}

func formatProbs(probs []float64) string {
	parts := make([]string, len(probs))
	for i, v := range probs {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
