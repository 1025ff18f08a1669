package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// ColumnsVersion is the column artifact format version this build reads.
const ColumnsVersion = 1

// columnsFile is the on-disk YAML layout of a column artifact.
type columnsFile struct {
	Version  int          `yaml:"version"`
	Columns  []string     `yaml:"columns"`
	Encoding encodingFile `yaml:"encoding"`
}

type encodingFile struct {
	Separator string            `yaml:"separator,omitempty"`
	DropFirst bool              `yaml:"drop_first"`
	Reference map[string]string `yaml:"reference,omitempty"`
}

// LoadColumns reads a YAML column artifact.
func LoadColumns(path string) (domain.TrainingColumns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TrainingColumns{}, fmt.Errorf("%w: read columns %s: %w", domain.ErrArtifactLoad, path, err)
	}

	var cf columnsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return domain.TrainingColumns{}, fmt.Errorf("%w: decode columns %s: %w", domain.ErrArtifactLoad, path, err)
	}
	if cf.Version != ColumnsVersion {
		return domain.TrainingColumns{}, fmt.Errorf("%w: columns %s have version %d, want %d", domain.ErrArtifactLoad, path, cf.Version, ColumnsVersion)
	}
	if len(cf.Columns) == 0 {
		return domain.TrainingColumns{}, fmt.Errorf("%w: columns %s: %w", domain.ErrArtifactLoad, path, errors.New("no columns"))
	}
	if cf.Encoding.DropFirst && len(cf.Encoding.Reference) == 0 {
		return domain.TrainingColumns{}, fmt.Errorf("%w: columns %s: drop_first set without reference categories", domain.ErrArtifactLoad, path)
	}

	cols, err := domain.NewTrainingColumns(cf.Columns, domain.Encoding{
		Separator: cf.Encoding.Separator,
		DropFirst: cf.Encoding.DropFirst,
		Reference: cf.Encoding.Reference,
	})
	if err != nil {
		return domain.TrainingColumns{}, fmt.Errorf("%w: columns %s: %w", domain.ErrArtifactLoad, path, err)
	}
	return cols, nil
}

// WriteColumns encodes a column set as a YAML artifact.
func WriteColumns(path string, cols domain.TrainingColumns) error {
	enc := cols.Encoding()
	cf := columnsFile{
		Version: ColumnsVersion,
		Columns: cols.Names(),
		Encoding: encodingFile{
			Separator: enc.Separator,
			DropFirst: enc.DropFirst,
			Reference: enc.Reference,
		},
	}
	data, err := yaml.Marshal(&cf)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
