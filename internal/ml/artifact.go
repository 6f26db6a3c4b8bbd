package ml

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/complaintdesk/triage/internal/domain"
)

// Artifact is the persisted (vocabulary, model) bundle. It is a single
// opaque gob file with no schema tag: an artifact is only valid for the
// exact trainer/classifier build that produced it.
type Artifact struct {
	Vocabulary Vocabulary
	Model      Model
}

// Save writes the artifact to path, replacing any existing file.
func (a *Artifact) Save(path string) error {
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

// LoadArtifact reads an artifact from path. A missing or corrupt file
// resolves to domain.ErrModelUnavailable; the caller is expected to treat
// that as fatal at service start.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrModelUnavailable, path, err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrModelUnavailable, path, err)
	}
	if a.Vocabulary.Size() == 0 || len(a.Model.Labels) == 0 {
		return nil, fmt.Errorf("%w: artifact %s is empty", domain.ErrModelUnavailable, path)
	}
	return &a, nil
}
