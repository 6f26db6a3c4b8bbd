package trainer

import (
	"errors"
	"testing"

	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/ml"
)

func trainSeed(t *testing.T) *ml.Predictor {
	t.Helper()

	artifact, err := New(Config{}, logging.NewNop()).Train(SeedExamples())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	return ml.NewPredictor(artifact)
}

func TestTrain_SeedPredictions(t *testing.T) {
	p := trainSeed(t)

	cases := []struct {
		description string
		want        string
	}{
		{"WiFi not connecting", "network"},
		{"Printer not responding", "technical"},
		{"My laptop won't turn on", "hardware"},
		{"Software keeps crashing", "software"},
	}
	for _, tc := range cases {
		got, err := p.Predict(tc.description)
		if err != nil {
			t.Fatalf("Predict(%q): %v", tc.description, err)
		}
		if got != tc.want {
			t.Errorf("Predict(%q) = %s, want %s", tc.description, got, tc.want)
		}
	}
}

func TestTrain_EmptyDescriptionYieldsDefaultCategory(t *testing.T) {
	p := trainSeed(t)

	want, err := p.DefaultCategory()
	if err != nil {
		t.Fatalf("default category: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := p.Predict("")
		if err != nil {
			t.Fatalf("Predict(\"\"): %v", err)
		}
		if got != want {
			t.Errorf("empty prediction %s, want default %s", got, want)
		}
	}

	// All-unknown text maps to the same default as empty text.
	got, err := p.Predict("zzz qqq xyzzy")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != want {
		t.Errorf("unknown-token prediction %s, want default %s", got, want)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	a, err := New(Config{}, logging.NewNop()).Train(SeedExamples())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	b, err := New(Config{}, logging.NewNop()).Train(SeedExamples())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	pa, pb := ml.NewPredictor(a), ml.NewPredictor(b)
	for _, ex := range SeedExamples() {
		ga, _ := pa.Predict(ex.Description)
		gb, _ := pb.Predict(ex.Description)
		if ga != gb {
			t.Errorf("Predict(%q) differs across identical runs: %s vs %s", ex.Description, ga, gb)
		}
	}
}

func TestTrain_EmptyExamples(t *testing.T) {
	_, err := New(Config{}, logging.NewNop()).Train(nil)
	if !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData, got %v", err)
	}
}

func TestTrain_AllStopWords(t *testing.T) {
	examples := []domain.TrainingExample{
		{Description: "the and of", Category: "other"},
	}
	_, err := New(Config{}, logging.NewNop()).Train(examples)
	if !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData, got %v", err)
	}
}

func TestBuildVocabulary_Ordering(t *testing.T) {
	examples := []domain.TrainingExample{
		{Description: "printer jam", Category: "technical"},
		{Description: "printer offline", Category: "technical"},
		{Description: "printer jam again", Category: "technical"},
	}
	vocab := buildVocabulary(examples, 100)

	// printer has df 3; jam (df 2) precedes offline and again (df 1), and
	// offline precedes again because it was seen first.
	want := []string{"printer", "jam", "offline", "again"}
	if len(vocab.Terms) != len(want) {
		t.Fatalf("vocabulary %v, want %v", vocab.Terms, want)
	}
	for i, term := range want {
		if vocab.Terms[i] != term {
			t.Errorf("Terms[%d] = %s, want %s", i, vocab.Terms[i], term)
		}
	}
	if vocab.DocCount != 3 {
		t.Errorf("DocCount = %d, want 3", vocab.DocCount)
	}
}

func TestBuildVocabulary_Bounded(t *testing.T) {
	vocab := buildVocabulary(SeedExamples(), 5)
	if vocab.Size() != 5 {
		t.Errorf("vocabulary size %d, want 5", vocab.Size())
	}

	artifact, err := New(Config{MaxVocabSize: 5}, logging.NewNop()).Train(SeedExamples())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if artifact.Vocabulary.Size() != 5 {
		t.Errorf("artifact vocabulary size %d, want 5", artifact.Vocabulary.Size())
	}
	for k := range artifact.Model.Weights {
		if len(artifact.Model.Weights[k]) != 5 {
			t.Errorf("weight row %d has %d columns, want 5", k, len(artifact.Model.Weights[k]))
		}
	}
}

func TestLabelOrder_FirstSeen(t *testing.T) {
	artifact, err := New(Config{}, logging.NewNop()).Train(SeedExamples())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	want := []string{"hardware", "software", "network", "technical"}
	if len(artifact.Model.Labels) != len(want) {
		t.Fatalf("labels %v, want %v", artifact.Model.Labels, want)
	}
	for i, label := range want {
		if artifact.Model.Labels[i] != label {
			t.Errorf("Labels[%d] = %s, want %s", i, artifact.Model.Labels[i], label)
		}
	}
}
