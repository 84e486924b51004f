// Package suggest ranks candidate strings by their levenshtein
// similarity to user input, for command suggestions and config hints.
package suggest

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"go.minekube.com/brigodier"
)

const DefaultMinimumSimilarityScore = 0.2

// Similar calls SimilarScore with DefaultMinimumSimilarityScore.
func Similar(builder *brigodier.SuggestionsBuilder, candidates []string) *brigodier.SuggestionsBuilder {
	return SimilarScore(builder, candidates, DefaultMinimumSimilarityScore)
}

// SimilarScore suggests the candidates matching the current argument
// input sorted by score. Candidates scoring below minScore are dropped.
// An empty argument suggests all candidates.
func SimilarScore(builder *brigodier.SuggestionsBuilder, candidates []string, minScore float64) *brigodier.SuggestionsBuilder {
	given := strings.ToLower(builder.Remaining)
	if given == "" {
		for _, c := range candidates {
			builder.Suggest(c)
		}
		return builder
	}
	for _, s := range rank(given, candidates, minScore, Score) {
		builder.Suggest(s.text)
	}
	return builder
}

// Closest returns the candidate most similar to given as a whole,
// or false if no candidate scores at least minScore.
func Closest(given string, candidates []string, minScore float64) (string, bool) {
	ranked := rank(given, candidates, minScore, func(given, candidate string) float64 {
		return levenshtein.Similarity(given, candidate, nil)
	})
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].text, true
}

type suggestion struct {
	text  string
	score float64
}

func rank(given string, candidates []string, minScore float64, score func(a, b string) float64) []suggestion {
	var result []suggestion
	for _, text := range candidates {
		s := score(given, text)
		if s < minScore {
			continue
		}
		result = append(result, suggestion{text: text, score: s})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].score > result[j].score
	})
	return result
}

// Score calculates the similarity score in the range of 0..1 of the given
// input and the same length prefix of suggestion.
func Score(given, suggestion string) float64 {
	i := len(given)
	if len(suggestion) < i {
		i = len(suggestion)
	}
	return levenshtein.Similarity(given, suggestion[:i], nil)
}
