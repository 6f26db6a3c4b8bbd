package ml

// Model is the trained linear classifier: one weight row and one bias per
// category label. Immutable once persisted; safe for unbounded concurrent
// prediction.
type Model struct {
	// Labels holds the category labels in artifact order. Ties break toward
	// the lowest index, so this ordering is part of the model's contract.
	Labels []string
	// Weights[k][j] is the weight of vocabulary column j for Labels[k].
	Weights [][]float64
	// Biases[k] is the per-category bias for Labels[k].
	Biases []float64
}

// Predict returns the label with the maximum score for vec. Scores are the
// dot product of vec with each label's weight row plus bias. Ties break
// toward the lowest label index so a zero vector always maps to the same
// label.
func (m *Model) Predict(vec FeatureVector) string {
	best := 0
	bestScore := m.score(0, vec)
	for k := 1; k < len(m.Labels); k++ {
		if s := m.score(k, vec); s > bestScore {
			best = k
			bestScore = s
		}
	}
	return m.Labels[best]
}

// DefaultCategory is the label predicted for the zero feature vector, i.e.
// for empty or all-unknown descriptions.
func (m *Model) DefaultCategory() string {
	return m.Predict(FeatureVector{})
}

func (m *Model) score(k int, vec FeatureVector) float64 {
	s := m.Biases[k]
	row := m.Weights[k]
	for j, w := range vec {
		s += row[j] * w
	}
	return s
}
