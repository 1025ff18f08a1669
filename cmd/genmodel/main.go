// Command genmodel writes a reference artifact pair: a multinomial logistic
// severity model and the matching feature column list. The pair is used for
// local runs, smoke tests and cmd/validate.
//
// Usage:
//
//	go run ./cmd/genmodel \
//	  -out-dir . \
//	  -locations Alaska,California,Chile,Japan
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/quake-severity-service/internal/artifact"
	"github.com/couchcryptid/quake-severity-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", ".", "directory to write the artifacts into")
	modelName := flag.String("model", "earthquake_severity_model.msgpack", "model artifact file name")
	columnsName := flag.String("columns", "feature_columns.yaml", "column artifact file name")
	locations := flag.String("locations", strings.Join(artifact.DemoLocations, ","), "comma-separated location categories")
	separator := flag.String("separator", domain.DefaultSeparator, "separator between field name and category")
	flag.Parse()

	locs := splitList(*locations)
	if len(locs) == 0 {
		flag.Usage()
		return fmt.Errorf("at least one location is required")
	}

	model, cols, err := artifact.NewDemoModel(locs, *separator)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	modelPath := filepath.Join(*outDir, *modelName)
	if err := artifact.WriteModel(modelPath, model); err != nil {
		return err
	}
	log.Printf("wrote %s (%s, %d classes, %d features)", modelPath, model.Kind(), len(model.Classes()), len(model.FeatureNames()))

	columnsPath := filepath.Join(*outDir, *columnsName)
	if err := artifact.WriteColumns(columnsPath, cols); err != nil {
		return err
	}
	log.Printf("wrote %s (%d columns, reference %q)", columnsPath, cols.Len(), cols.Encoding().Reference["location"])
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
