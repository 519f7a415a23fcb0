package signal

import (
	"math"
	"sort"
	"strings"

	"github.com/confero/confero/core"
)

// textIndex holds corpus-wide term statistics for TF-IDF relevance.
// Rebuilt wholesale by Engine.Initialize.
type textIndex struct {
	docCount int
	// df is the number of documents containing each term.
	df map[string]int
	// docs maps actor id to term frequencies within its document.
	docs map[string]map[string]float64
}

// documentText concatenates the text fields that feed the relevance index.
func documentText(a *core.Actor) string {
	parts := []string{a.Title, a.Description, a.Abstract, a.Pitch}
	parts = append(parts, a.Categories...)
	if a.Attendee != nil {
		parts = append(parts, a.Attendee.Interests...)
	}
	return strings.Join(parts, " ")
}

func buildTextIndex(actors []*core.Actor) *textIndex {
	idx := &textIndex{
		df:   make(map[string]int),
		docs: make(map[string]map[string]float64),
	}
	for _, actor := range actors {
		tokens := Tokenize(documentText(actor))
		if len(tokens) == 0 {
			continue
		}
		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		total := float64(len(tokens))
		for tok := range tf {
			tf[tok] /= total
			idx.df[tok]++
		}
		idx.docs[actor.Id] = tf
		idx.docCount++
	}
	return idx
}

// relevance is the cosine similarity of the two actors' TF-IDF vectors,
// restricted to the union vocabulary of the two documents. Undefined (0) when
// the corpus has fewer than two documents or either actor has no text.
func (idx *textIndex) relevance(aID, bID string) float64 {
	if idx == nil || idx.docCount < 2 {
		return 0
	}
	docA, okA := idx.docs[aID]
	docB, okB := idx.docs[bID]
	if !okA || !okB {
		return 0
	}

	seen := make(map[string]bool, len(docA)+len(docB))
	union := make([]string, 0, len(docA)+len(docB))
	for tok := range docA {
		seen[tok] = true
		union = append(union, tok)
	}
	for tok := range docB {
		if !seen[tok] {
			union = append(union, tok)
		}
	}
	// Summed in a fixed order so the result is bit-identical regardless
	// of argument order.
	sort.Strings(union)

	var dot, normA, normB float64
	for _, tok := range union {
		idf := math.Log(1 + float64(idx.docCount)/float64(idx.df[tok]))
		wA := docA[tok] * idf
		wB := docB[tok] * idf
		dot += wA * wB
		normA += wA * wA
		normB += wB * wB
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
