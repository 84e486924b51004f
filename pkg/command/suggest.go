package command

import (
	"go.minekube.com/brigodier"

	"go.minekube.com/veinminer/pkg/command/suggest"
)

// SuggestFunc is a convenient function type implementing
// the brigodier.SuggestionProvider interface.
type SuggestFunc func(
	c *Context,
	b *brigodier.SuggestionsBuilder) *brigodier.Suggestions

var _ brigodier.SuggestionProvider = (*SuggestFunc)(nil)

func (s SuggestFunc) Suggestions(
	c *brigodier.CommandContext,
	b *brigodier.SuggestionsBuilder) *brigodier.Suggestions {
	return s(&Context{CommandContext: c, Source: SourceFromContext(c)}, b)
}

// SuggestSimilar returns a SuggestionProvider suggesting the
// candidates most similar to the current argument input.
func SuggestSimilar(candidates func(c *Context) []string) brigodier.SuggestionProvider {
	return SuggestFunc(func(c *Context, b *brigodier.SuggestionsBuilder) *brigodier.Suggestions {
		return suggest.Similar(b, candidates(c)).Build()
	})
}
