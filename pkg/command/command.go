// Package command provides a brigodier based command manager whose
// commands are executed on behalf of a Source, usually a player.
package command

import (
	"context"
	"errors"
	"strings"

	"go.minekube.com/brigodier"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/veinminer/pkg/util/permission"
)

// Manager registers and executes commands.
// The zero value is ready to use.
type Manager struct{ brigodier.Dispatcher }

// Source is the invoker of a command, a player or the console.
type Source interface {
	permission.Subject
	SendMessage(msg component.Component) error
}

// ErrMissingSource is returned when executing a command without a Source.
var ErrMissingSource = errors.New("context misses command source")

type sourceKey struct{}

// SourceFromContext returns the Source stored in a command context, or nil.
func SourceFromContext(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)
	return src
}

// Context is passed to commands built with Command.
type Context struct {
	*brigodier.CommandContext
	Source
}

// Command adapts fn to a brigodier.Command.
func Command(fn func(c *Context) error) brigodier.Command {
	return brigodier.CommandFunc(func(c *brigodier.CommandContext) error {
		return fn(&Context{CommandContext: c, Source: SourceFromContext(c)})
	})
}

// RequiresPermission returns a brigodier requirement that the Source has perm.
func RequiresPermission(perm string) func(context.Context) bool {
	return func(ctx context.Context) bool {
		src := SourceFromContext(ctx)
		return src != nil && src.HasPermission(perm)
	}
}

// RegisterWithAliases registers the command built by build under name
// and every alias.
func (m *Manager) RegisterWithAliases(build func(name string) brigodier.LiteralNodeBuilder, name string, aliases ...string) {
	for _, n := range append([]string{name}, aliases...) {
		m.Register(build(n))
	}
}

// Has reports whether the command or alias is registered.
func (m *Manager) Has(command string) bool {
	_, ok := m.Root.Children()[strings.ToLower(command)]
	return ok
}

func (m *Manager) parse(ctx context.Context, src Source, cmdline string) *brigodier.ParseResults {
	ctx = context.WithValue(ctx, sourceKey{}, src)
	return m.ParseReader(ctx, &brigodier.StringReader{String: strings.TrimPrefix(cmdline, "/")})
}

// Do parses and executes cmdline on behalf of src.
// A leading slash is ignored.
func (m *Manager) Do(ctx context.Context, src Source, cmdline string) error {
	if src == nil {
		return ErrMissingSource
	}
	return m.Execute(m.parse(ctx, src, cmdline))
}

// OfferSuggestions returns the completion suggestions for cmdline.
func (m *Manager) OfferSuggestions(ctx context.Context, src Source, cmdline string) ([]string, error) {
	suggestions, err := m.CompletionSuggestions(m.parse(ctx, src, cmdline))
	if err != nil {
		return nil, err
	}
	s := make([]string, 0, len(suggestions.Suggestions))
	for _, suggestion := range suggestions.Suggestions {
		s = append(s, suggestion.Text)
	}
	return s, nil
}
