// Package ml implements the complaint category model: TF-IDF feature
// encoding over a bounded vocabulary and linear multinomial scoring.
package ml

import (
	"strings"
	"unicode"
)

// stopWords is the fixed set of tokens discarded during encoding. The list
// covers common English function words; it must stay identical between
// training and serving, so it lives here rather than in config.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "can", "did", "do", "does",
		"doing", "down", "during", "each", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "him",
		"his", "how", "i", "if", "in", "into", "is", "it", "its", "just",
		"me", "more", "most", "my", "no", "nor", "not", "now", "of", "off",
		"on", "once", "only", "or", "other", "our", "out", "over", "own",
		"s", "same", "she", "should", "so", "some", "such", "t", "than",
		"that", "the", "their", "them", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "won", "you", "your",
	} {
		stopWords[w] = struct{}{}
	}
}

// Tokenize lowercases s and splits it on non-alphanumeric boundaries,
// dropping stop words.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	var cur strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			tokens = appendToken(tokens, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		tokens = appendToken(tokens, cur.String())
	}
	return tokens
}

func appendToken(tokens []string, tok string) []string {
	if _, stop := stopWords[tok]; stop {
		return tokens
	}
	return append(tokens, tok)
}
