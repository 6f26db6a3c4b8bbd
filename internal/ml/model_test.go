package ml

import "testing"

func testModel() *Model {
	return &Model{
		Labels: []string{"hardware", "network", "software"},
		Weights: [][]float64{
			{1.0, -0.5, 0.0, 0.3},
			{-0.2, 2.0, 0.4, -0.1},
			{0.1, 0.1, 0.2, 0.0},
		},
		Biases: []float64{0.0, -0.1, 0.05},
	}
}

func TestPredict_Argmax(t *testing.T) {
	m := testModel()

	if got := m.Predict(FeatureVector{0: 1.0}); got != "hardware" {
		t.Errorf("expected hardware, got %s", got)
	}
	if got := m.Predict(FeatureVector{1: 1.0}); got != "network" {
		t.Errorf("expected network, got %s", got)
	}
}

func TestPredict_TieBreaksToLowestIndex(t *testing.T) {
	m := &Model{
		Labels:  []string{"billing", "access", "other"},
		Weights: [][]float64{{0}, {0}, {0}},
		Biases:  []float64{0.5, 0.5, 0.5},
	}
	for i := 0; i < 10; i++ {
		if got := m.Predict(FeatureVector{}); got != "billing" {
			t.Fatalf("tie must resolve to lowest index, got %s", got)
		}
	}
}

func TestDefaultCategory_Stable(t *testing.T) {
	m := testModel()

	first := m.DefaultCategory()
	for i := 0; i < 10; i++ {
		if got := m.DefaultCategory(); got != first {
			t.Fatalf("default category changed: %s vs %s", first, got)
		}
	}
	// Zero vector scoring reduces to the biases; software has the largest.
	if first != "software" {
		t.Errorf("expected software, got %s", first)
	}
}
