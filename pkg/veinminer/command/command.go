// Package command provides the /veinminer command.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.minekube.com/brigodier"
	"go.minekube.com/common/minecraft/color"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/veinminer/pkg/command"
	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/session"
)

// Permissions of the subcommands.
const (
	PermissionReload  = "veinminer.command.reload"
	PermissionToggle  = "veinminer.command.toggle"
	PermissionMode    = "veinminer.command.mode"
	PermissionPattern = "veinminer.command.pattern"
)

// Name is the name of the command, Aliases its aliases.
var (
	Name    = "veinminer"
	Aliases = []string{"vm"}
)

// PlayerSource is a command source that is a player.
type PlayerSource interface {
	command.Source
	ID() uuid.UUID
}

// Options are the options of the /veinminer command.
type Options struct {
	Sessions *session.Manager // Required.
	// Reload reloads the configuration.
	// The reload subcommand is not registered if nil.
	Reload  func(ctx context.Context) error
	Version string
}

// Register registers the /veinminer command and its aliases.
func Register(mgr *command.Manager, opts Options) {
	mgr.RegisterWithAliases(func(name string) brigodier.LiteralNodeBuilder {
		return newCommand(name, opts)
	}, Name, Aliases...)
}

func newCommand(name string, opts Options) brigodier.LiteralNodeBuilder {
	sessions := opts.Sessions
	cmd := brigodier.Literal(name).
		Executes(command.Command(func(c *command.Context) error {
			return c.SendMessage(usage(name))
		})).
		Then(brigodier.Literal("version").
			Executes(command.Command(func(c *command.Context) error {
				return c.SendMessage(info(fmt.Sprintf("VeinMiner %s (protocol version %d)",
					opts.Version, network.Protocol.Version())))
			})),
		).
		Then(brigodier.Literal("toggle").
			Requires(command.RequiresPermission(PermissionToggle)).
			Executes(command.Command(func(c *command.Context) error {
				s, ok := sessionOf(c, sessions)
				if !ok {
					return c.SendMessage(onlyPlayers)
				}
				s.SetVeinMinerEnabled(!s.VeinMinerEnabled())
				return c.SendMessage(info("VeinMiner is now " + enabledString(s.VeinMinerEnabled()) + "."))
			})).
			Then(brigodier.Argument("category", brigodier.String).
				Suggests(command.SuggestSimilar(func(*command.Context) []string {
					return sessions.VeinMiner().Categories.IDs()
				})).
				Executes(command.Command(func(c *command.Context) error {
					s, ok := sessionOf(c, sessions)
					if !ok {
						return c.SendMessage(onlyPlayers)
					}
					id := strings.ToLower(c.String("category"))
					category, ok := sessions.VeinMiner().Categories.Get(id)
					if !ok {
						return c.SendMessage(failure(fmt.Sprintf("Unknown tool category %q.", id)))
					}
					s.SetVeinMinerEnabledFor(!s.VeinMinerEnabledFor(category), category)
					return c.SendMessage(info(fmt.Sprintf("VeinMiner is now %s for %s.",
						enabledString(s.VeinMinerEnabledFor(category)), category.ID)))
				})),
			),
		).
		Then(brigodier.Literal("mode").
			Requires(command.RequiresPermission(PermissionMode)).
			Then(brigodier.Argument("strategy", brigodier.String).
				Suggests(command.SuggestSimilar(func(*command.Context) []string {
					var names []string
					for _, s := range veinminer.ActivationStrategies() {
						names = append(names, s.String())
					}
					return names
				})).
				Executes(command.Command(func(c *command.Context) error {
					s, ok := sessionOf(c, sessions)
					if !ok {
						return c.SendMessage(onlyPlayers)
					}
					strategy, err := veinminer.ParseActivationStrategy(c.String("strategy"))
					if err != nil {
						return c.SendMessage(failure(fmt.Sprintf("Unknown activation strategy %q.", c.String("strategy"))))
					}
					if strategy == veinminer.ActivationClient && !s.UsingClientMod() {
						return c.SendMessage(failure("The client activation strategy requires the client-side mod."))
					}
					s.SetActivationStrategy(strategy)
					return c.SendMessage(info(fmt.Sprintf("Activation strategy set to %s.", strategy)))
				})),
			),
		).
		Then(brigodier.Literal("pattern").
			Requires(command.RequiresPermission(PermissionPattern)).
			Then(brigodier.Argument("pattern", brigodier.StringPhrase).
				Suggests(command.SuggestSimilar(func(c *command.Context) []string {
					var keys []string
					for _, k := range sessions.VeinMiner().Patterns.Keys() {
						if c.Source != nil && c.Source.HasPermission(session.PatternPermission(k)) {
							keys = append(keys, k)
						}
					}
					return keys
				})).
				Executes(command.Command(func(c *command.Context) error {
					s, ok := sessionOf(c, sessions)
					if !ok {
						return c.SendMessage(onlyPlayers)
					}
					return changePattern(c, s, c.String("pattern"))
				})),
			),
		)

	if opts.Reload != nil {
		cmd = cmd.Then(brigodier.Literal("reload").
			Requires(command.RequiresPermission(PermissionReload)).
			Executes(command.Command(func(c *command.Context) error {
				if err := opts.Reload(c); err != nil {
					return c.SendMessage(failure("Failed to reload the configuration: " + err.Error()))
				}
				return c.SendMessage(info("Reloaded the configuration."))
			})),
		)
	}
	return cmd
}

func changePattern(c *command.Context, s *session.Session, given string) error {
	k, err := veinminer.ParseKey(given)
	if err != nil {
		return c.SendMessage(failure(fmt.Sprintf("Invalid pattern %q.", given)))
	}
	if !c.HasPermission(session.PatternPermission(veinminer.KeyString(k))) {
		return c.SendMessage(failure("You do not have permission to use this pattern."))
	}
	pattern, err := s.ChangeVeinMiningPattern(veinminer.KeyString(k))
	if err != nil {
		return c.SendMessage(failure(fmt.Sprintf("Could not select pattern %s: %v.", veinminer.KeyString(k), err)))
	}
	if s.UsingClientMod() {
		if err = network.Protocol.SendToClient(s, &network.SetPattern{Pattern: pattern.Key()}); err != nil {
			return err
		}
	}
	return c.SendMessage(info("Vein mining pattern set to " + veinminer.KeyString(pattern.Key()) + "."))
}

func sessionOf(c *command.Context, sessions *session.Manager) (*session.Session, bool) {
	p, ok := c.Source.(PlayerSource)
	if !ok {
		return nil, false
	}
	return sessions.Get(p.ID())
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

var onlyPlayers = failure("Only players can use this command!")

func info(s string) component.Component {
	return &component.Text{Content: s, S: component.Style{Color: color.Green}}
}

func failure(s string) component.Component {
	return &component.Text{Content: s, S: component.Style{Color: color.Red}}
}

func usage(name string) component.Component {
	return &component.Text{
		Content: fmt.Sprintf("Usage: /%s <version|toggle [category]|mode <strategy>|pattern <pattern>|reload>", name),
		S:       component.Style{Color: color.Yellow},
	}
}
