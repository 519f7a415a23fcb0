package signal

import "strings"

// Stop words filtered out of keyword sets and the TF-IDF index
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "we": true, "our": true, "your": true,
}

// Tokenize splits text into words, lowercases, trims punctuation, and removes
// stop words.
func Tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// KeywordSet returns the distinct stop-word-filtered keywords of a text.
func KeywordSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

// KeywordJaccard is the Jaccard overlap of two keyword sets. It is a lighter
// heuristic than TF-IDF, suited to short bios and one-line pitches.
func KeywordJaccard(a, b string) float64 {
	setA := KeywordSet(a)
	setB := KeywordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for tok := range setA {
		if setB[tok] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
