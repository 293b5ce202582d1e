package classifier

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Classifier serves predictions from the artifact at a fixed path. The
// artifact is cached and reloaded when the file's mtime changes, so a
// freshly written artifact is observed on the next call. Loaded
// artifacts are never mutated, so concurrent Predict calls share one
// safely.
type Classifier struct {
	path string

	mu       sync.Mutex
	artifact *Artifact
	modTime  time.Time
}

func New(path string) *Classifier {
	return &Classifier{path: path}
}

// Predict returns the model label for the text, or an error when the
// artifact cannot be loaded. It never inspects the text for validity:
// empty text still yields the model's best guess.
func (c *Classifier) Predict(_ context.Context, text string) (string, error) {
	artifact, err := c.load()
	if err != nil {
		return "", err
	}
	label := artifact.Model.Predict(artifact.Vectorizer.Transform(text))
	if label == "" {
		return "", fmt.Errorf("model produced empty label")
	}
	return label, nil
}

func (c *Classifier) load() (*Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.path)
	if err != nil {
		c.artifact = nil
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	if c.artifact != nil && info.ModTime().Equal(c.modTime) {
		return c.artifact, nil
	}

	artifact, err := LoadArtifact(c.path)
	if err != nil {
		c.artifact = nil
		return nil, err
	}
	c.artifact = artifact
	c.modTime = info.ModTime()
	return artifact, nil
}
