package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/weiihann/primbench/harness"
)

// Manifest records how a run was produced so its CSV files can be traced
// back to a seed and sweep later.
type Manifest struct {
	RunID     string           `yaml:"run_id"`
	StartedAt time.Time        `yaml:"started_at"`
	Seed      int64            `yaml:"seed"`
	Step      int              `yaml:"step"`
	Max       int              `yaml:"max"`
	Accesses  int              `yaml:"accesses"`
	Results   []harness.Result `yaml:"results"`
}

// NewManifest creates a Manifest with a fresh run ID.
func NewManifest(
	startedAt time.Time,
	seed int64,
	sweep harness.Sweep,
	results []harness.Result,
) Manifest {
	return Manifest{
		RunID:     uuid.NewString(),
		StartedAt: startedAt.UTC(),
		Seed:      seed,
		Step:      sweep.Step,
		Max:       sweep.Max,
		Accesses:  sweep.Accesses,
		Results:   results,
	}
}

// EncodeManifest writes m to w as YAML.
func EncodeManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return enc.Close()
}

// WriteManifest writes m to path as YAML, replacing any existing file.
func WriteManifest(path string, m Manifest) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close manifest %s: %w", path, closeErr)
		}
	}()

	return EncodeManifest(f, m)
}

// ReadManifest loads a Manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return m, nil
}
