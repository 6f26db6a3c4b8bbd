package ml

import (
	"github.com/complaintdesk/triage/internal/domain"
)

// Predictor maps a complaint description to a category label. The artifact
// is loaded once at process start and read-only afterwards, so a single
// Predictor serves unbounded concurrent calls without locking.
type Predictor struct {
	encoder *Encoder
	model   *Model
}

// NewPredictor builds a predictor over a loaded artifact.
func NewPredictor(artifact *Artifact) *Predictor {
	return &Predictor{
		encoder: NewEncoder(&artifact.Vocabulary),
		model:   &artifact.Model,
	}
}

// Predict classifies description. It fails fast with
// domain.ErrModelUnavailable when no artifact is loaded rather than
// returning a silent default.
func (p *Predictor) Predict(description string) (string, error) {
	if p == nil || p.model == nil {
		return "", domain.ErrModelUnavailable
	}
	return p.model.Predict(p.encoder.Encode(description)), nil
}

// ZeroVector reports whether description encodes to the zero feature
// vector, i.e. whether a prediction for it resolves to the default
// category.
func (p *Predictor) ZeroVector(description string) bool {
	if p == nil || p.encoder == nil {
		return true
	}
	return len(p.encoder.Encode(description)) == 0
}

// DefaultCategory is the label returned for empty or all-unknown text.
func (p *Predictor) DefaultCategory() (string, error) {
	if p == nil || p.model == nil {
		return "", domain.ErrModelUnavailable
	}
	return p.model.DefaultCategory(), nil
}

// Labels returns the category labels in artifact order.
func (p *Predictor) Labels() []string {
	if p == nil || p.model == nil {
		return nil
	}
	return p.model.Labels
}
