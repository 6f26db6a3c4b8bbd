package trainer

import (
	"fmt"
	"math"
	"sort"

	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/ml"
)

// Default training hyperparameters.
const (
	// DefaultMaxVocabSize bounds the vocabulary to the most frequent tokens.
	DefaultMaxVocabSize = 1000
	// DefaultMaxIterations bounds gradient descent. Training that has not
	// converged by then still completes with the best iterate reached.
	DefaultMaxIterations = 1000
	// DefaultLearningRate is the gradient step size.
	DefaultLearningRate = 0.5
	// DefaultRegularization is the L2 penalty on weights (not biases).
	DefaultRegularization = 1e-3
	// DefaultTolerance is the loss delta below which training stops early.
	DefaultTolerance = 1e-6
)

// Config holds training hyperparameters.
type Config struct {
	MaxVocabSize   int
	MaxIterations  int
	LearningRate   float64
	Regularization float64
	Tolerance      float64
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.MaxVocabSize == 0 {
		c.MaxVocabSize = DefaultMaxVocabSize
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Regularization == 0 {
		c.Regularization = DefaultRegularization
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
}

// Trainer fits the (vocabulary, classifier) artifact from an ordered
// sequence of training examples. Training is fully deterministic: weights
// start at zero and the data order fixes every tie break.
type Trainer struct {
	cfg Config
	log logging.Logger
}

// New creates a trainer.
func New(cfg Config, log logging.Logger) *Trainer {
	cfg.SetDefaults()
	return &Trainer{cfg: cfg, log: log}
}

// Train builds the vocabulary, fits the softmax classifier and returns the
// artifact. A category with no examples can never be predicted; that is a
// documented limitation, not an error.
func (t *Trainer) Train(examples []domain.TrainingExample) (*ml.Artifact, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: empty example set", domain.ErrTrainingData)
	}

	vocab := buildVocabulary(examples, t.cfg.MaxVocabSize)
	if vocab.Size() == 0 {
		return nil, fmt.Errorf("%w: no tokens survive tokenization", domain.ErrTrainingData)
	}

	labels := labelOrder(examples)
	encoder := ml.NewEncoder(vocab)

	vectors := make([]ml.FeatureVector, len(examples))
	targets := make([]int, len(examples))
	labelIndex := make(map[string]int, len(labels))
	for k, label := range labels {
		labelIndex[label] = k
	}
	for i, ex := range examples {
		vectors[i] = encoder.Encode(ex.Description)
		targets[i] = labelIndex[ex.Category]
	}

	model, iterations, converged := t.fit(vectors, targets, labels, vocab.Size())

	t.log.Info("training complete",
		logging.Int("examples", len(examples)),
		logging.Int("vocabulary_size", vocab.Size()),
		logging.Int("labels", len(labels)),
		logging.Int("iterations", iterations),
		logging.Bool("converged", converged),
	)
	if !converged {
		t.log.Warn("gradient descent hit the iteration bound, persisting best iterate",
			logging.Int("max_iterations", t.cfg.MaxIterations),
		)
	}

	return &ml.Artifact{Vocabulary: *vocab, Model: *model}, nil
}

// buildVocabulary collects tokens across all examples, orders them by
// descending document frequency with first-seen order breaking ties, and
// truncates to maxSize. Tokens beyond the bound are dropped silently.
func buildVocabulary(examples []domain.TrainingExample, maxSize int) *ml.Vocabulary {
	type tokenStat struct {
		term      string
		docFreq   int
		firstSeen int
	}

	stats := make(map[string]*tokenStat)
	order := 0
	for _, ex := range examples {
		seen := make(map[string]struct{})
		for _, tok := range ml.Tokenize(ex.Description) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			st, ok := stats[tok]
			if !ok {
				st = &tokenStat{term: tok, firstSeen: order}
				stats[tok] = st
				order++
			}
			st.docFreq++
		}
	}

	sorted := make([]*tokenStat, 0, len(stats))
	for _, st := range stats {
		sorted = append(sorted, st)
	}
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].docFreq != sorted[b].docFreq {
			return sorted[a].docFreq > sorted[b].docFreq
		}
		return sorted[a].firstSeen < sorted[b].firstSeen
	})
	if len(sorted) > maxSize {
		sorted = sorted[:maxSize]
	}

	vocab := &ml.Vocabulary{
		Terms:    make([]string, len(sorted)),
		DocFreq:  make([]int, len(sorted)),
		DocCount: len(examples),
	}
	for i, st := range sorted {
		vocab.Terms[i] = st.term
		vocab.DocFreq[i] = st.docFreq
	}
	return vocab
}

// labelOrder returns the distinct categories in first-seen order. This
// ordering is persisted in the artifact and fixes the prediction tie break.
func labelOrder(examples []domain.TrainingExample) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, ex := range examples {
		if _, ok := seen[ex.Category]; ok {
			continue
		}
		seen[ex.Category] = struct{}{}
		labels = append(labels, ex.Category)
	}
	return labels
}

// fit runs batch gradient descent on the softmax cross-entropy loss with L2
// regularization. It returns the best iterate reached, the iteration count,
// and whether the loss converged within the bound.
func (t *Trainer) fit(
	vectors []ml.FeatureVector,
	targets []int,
	labels []string,
	vocabSize int,
) (*ml.Model, int, bool) {
	numLabels := len(labels)
	numDocs := len(vectors)

	weights := make([][]float64, numLabels)
	for k := range weights {
		weights[k] = make([]float64, vocabSize)
	}
	biases := make([]float64, numLabels)

	bestWeights := cloneMatrix(weights)
	bestBiases := append([]float64(nil), biases...)
	bestLoss := math.Inf(1)
	prevLoss := math.Inf(1)
	converged := false

	gradW := make([][]float64, numLabels)
	for k := range gradW {
		gradW[k] = make([]float64, vocabSize)
	}
	gradB := make([]float64, numLabels)
	probs := make([]float64, numLabels)

	iter := 0
	for ; iter < t.cfg.MaxIterations; iter++ {
		for k := range gradW {
			for j := range gradW[k] {
				gradW[k][j] = 0
			}
			gradB[k] = 0
		}

		loss := 0.0
		for i, vec := range vectors {
			softmax(weights, biases, vec, probs)
			loss -= math.Log(math.Max(probs[targets[i]], 1e-12))

			for k := 0; k < numLabels; k++ {
				delta := probs[k]
				if k == targets[i] {
					delta -= 1
				}
				gradB[k] += delta
				for j, x := range vec {
					gradW[k][j] += delta * x
				}
			}
		}
		loss /= float64(numDocs)

		// L2 penalty on weights only.
		for k := range weights {
			for _, w := range weights[k] {
				loss += 0.5 * t.cfg.Regularization * w * w
			}
		}

		if loss < bestLoss {
			bestLoss = loss
			copyMatrix(bestWeights, weights)
			copy(bestBiases, biases)
		}
		if math.Abs(prevLoss-loss) < t.cfg.Tolerance {
			converged = true
			break
		}
		prevLoss = loss

		scale := t.cfg.LearningRate / float64(numDocs)
		for k := range weights {
			for j := range weights[k] {
				weights[k][j] -= scale*gradW[k][j] + t.cfg.LearningRate*t.cfg.Regularization*weights[k][j]
			}
			biases[k] -= scale * gradB[k]
		}
	}

	return &ml.Model{Labels: labels, Weights: bestWeights, Biases: bestBiases}, iter, converged
}

// softmax fills out with the class probabilities for vec.
func softmax(weights [][]float64, biases []float64, vec ml.FeatureVector, out []float64) {
	maxScore := math.Inf(-1)
	for k := range out {
		s := biases[k]
		for j, x := range vec {
			s += weights[k][j] * x
		}
		out[k] = s
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	for k := range out {
		out[k] = math.Exp(out[k] - maxScore)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = append([]float64(nil), m[i]...)
	}
	return out
}

func copyMatrix(dst, src [][]float64) {
	for i := range src {
		copy(dst[i], src[i])
	}
}
