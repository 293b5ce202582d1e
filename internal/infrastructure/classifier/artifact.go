package classifier

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is the frozen (vectorizer, model) pair. Written once by
// training, read many times by serving.
type Artifact struct {
	Vectorizer *Vectorizer
	Model      *LinearModel
}

func (a *Artifact) validate() error {
	if a.Vectorizer == nil || a.Model == nil {
		return fmt.Errorf("artifact is missing vectorizer or model")
	}
	if len(a.Model.Labels) == 0 {
		return fmt.Errorf("artifact model has no labels")
	}
	if len(a.Model.Weights) != len(a.Model.Labels) || len(a.Model.Bias) != len(a.Model.Labels) {
		return fmt.Errorf("artifact model shape mismatch: %d labels, %d weight rows, %d biases",
			len(a.Model.Labels), len(a.Model.Weights), len(a.Model.Bias))
	}
	for _, row := range a.Model.Weights {
		if len(row) != a.Vectorizer.Dim() {
			return fmt.Errorf("artifact weight row dim %d does not match vocabulary dim %d",
				len(row), a.Vectorizer.Dim())
		}
	}
	return nil
}

// SaveArtifact persists the pair at path, creating missing directories.
func SaveArtifact(path string, a *Artifact) error {
	if err := a.validate(); err != nil {
		return fmt.Errorf("refusing to save artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(a); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads and validates the pair. Absent, corrupt and
// schema-mismatched files all fail with a plain error; degrading to the
// sentinel category is the caller's decision.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
