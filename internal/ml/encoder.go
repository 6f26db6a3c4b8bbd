package ml

import "math"

// FeatureVector is a sparse mapping from vocabulary index to a non-negative
// TF-IDF weight.
type FeatureVector map[int]float64

// Vocabulary is the ordered mapping from token to column index, together
// with the document-frequency table captured at training time. It is built
// once during training and immutable afterwards.
type Vocabulary struct {
	// Terms holds the tokens in column order.
	Terms []string
	// DocFreq[i] is the number of training documents containing Terms[i].
	DocFreq []int
	// DocCount is the total number of training documents.
	DocCount int

	index map[string]int
}

// Size returns the number of vocabulary entries.
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// Index returns the column index for tok, if present.
func (v *Vocabulary) Index(tok string) (int, bool) {
	if v.index == nil {
		v.buildIndex()
	}
	i, ok := v.index[tok]
	return i, ok
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.index[term] = i
	}
}

// Encoder turns raw complaint text into a sparse TF-IDF feature vector.
// Encoding is a pure function of (text, vocabulary): the same token set and
// length always yield the same vector.
type Encoder struct {
	vocab *Vocabulary
}

// NewEncoder creates an encoder over the given vocabulary. The token index
// is built here, up front: a decoded artifact arrives without it, and
// concurrent Encode calls must never mutate the vocabulary.
func NewEncoder(vocab *Vocabulary) *Encoder {
	if vocab.index == nil {
		vocab.buildIndex()
	}
	return &Encoder{vocab: vocab}
}

// Encode computes the TF-IDF vector for text. Unknown tokens contribute
// zero weight; empty or all-unknown text yields the zero vector.
//
// Weight = (token count / retained token count) * log(N / (1 + docfreq)).
// The IDF term uses the vocabulary's persisted document-frequency table so
// training and serving always agree.
func (e *Encoder) Encode(text string) FeatureVector {
	counts := make(map[int]int)
	total := 0
	for _, tok := range Tokenize(text) {
		idx, ok := e.vocab.Index(tok)
		if !ok {
			continue
		}
		counts[idx]++
		total++
	}
	if total == 0 {
		return FeatureVector{}
	}

	vec := make(FeatureVector, len(counts))
	n := float64(e.vocab.DocCount)
	for idx, count := range counts {
		idf := math.Log(n / float64(1+e.vocab.DocFreq[idx]))
		if idf <= 0 {
			// Token present in every training document carries no signal.
			continue
		}
		vec[idx] = float64(count) / float64(total) * idf
	}
	return vec
}
