package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/command"
	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/scheduler"
	"go.minekube.com/veinminer/pkg/util/componentutil"
	"go.minekube.com/veinminer/pkg/util/permission"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/config"
	"go.minekube.com/veinminer/pkg/veinminer/session"
)

type player struct {
	id       uuid.UUID
	perms    permission.Func
	messages []string
	plugin   [][]byte
}

var (
	_ session.Player = (*player)(nil)
	_ PlayerSource   = (*player)(nil)
)

func (p *player) ID() uuid.UUID                           { return p.id }
func (p *player) Active() bool                            { return true }
func (p *player) Sneaking() bool                          { return false }
func (p *player) Disconnect(component.Component)          {}
func (p *player) HeldItem() veinminer.ItemType            { return "" }
func (p *player) World() veinminer.BlockAccessor          { return nil }
func (p *player) TargetBlock() (veinminer.Position, bool) { return veinminer.Position{}, false }
func (p *player) SendMessage(msg component.Component) error {
	p.messages = append(p.messages, componentutil.Legacy(msg))
	return nil
}
func (p *player) SendPluginMessage(_ message.ChannelIdentifier, data []byte) error {
	p.plugin = append(p.plugin, data)
	return nil
}
func (p *player) PermissionValue(perm string) permission.TriState {
	if p.perms == nil {
		return permission.True
	}
	return p.perms(perm)
}
func (p *player) HasPermission(perm string) bool { return p.PermissionValue(perm).Bool() }

func (p *player) last() string {
	if len(p.messages) == 0 {
		return ""
	}
	return p.messages[len(p.messages)-1]
}

func setup(t *testing.T, reload func(context.Context) error) (*command.Manager, *session.Manager) {
	cfg := config.Default()
	patterns, err := veinminer.NewPatternRegistry(
		veinminer.NewDefaultPattern(),
		veinminer.NewPattern(key.New("test", "vertical"), veinminer.Up, veinminer.Down),
	)
	require.NoError(t, err)
	vm, errs := cfg.VeinMiner(patterns)
	require.Empty(t, errs)
	defaults, err := session.DefaultsFrom(cfg)
	require.NoError(t, err)
	sessions, err := session.NewManager(session.Options{
		VeinMiner: vm,
		Defaults:  defaults,
		Scheduler: scheduler.New(logr.Discard()),
		Log:       logr.Discard(),
	})
	require.NoError(t, err)

	mgr := new(command.Manager)
	Register(mgr, Options{Sessions: sessions, Reload: reload, Version: "test"})
	return mgr, sessions
}

func join(t *testing.T, sessions *session.Manager) (*player, *session.Session) {
	p := &player{id: uuid.New()}
	s, err := sessions.Add(context.Background(), p)
	require.NoError(t, err)
	return p, s
}

func TestAliases(t *testing.T) {
	mgr, _ := setup(t, nil)
	assert.True(t, mgr.Has("veinminer"))
	assert.True(t, mgr.Has("vm"))
}

func TestToggle(t *testing.T) {
	mgr, sessions := setup(t, nil)
	p, s := join(t, sessions)
	ctx := context.Background()

	require.NoError(t, mgr.Do(ctx, p, "vm toggle"))
	assert.False(t, s.VeinMinerEnabled())
	assert.True(t, s.VeinMinerDisabled())
	assert.Contains(t, p.last(), "disabled")

	require.NoError(t, mgr.Do(ctx, p, "vm toggle"))
	assert.True(t, s.VeinMinerEnabled())

	require.NoError(t, mgr.Do(ctx, p, "veinminer toggle Axe"))
	axe, _ := sessions.VeinMiner().Categories.Get("axe")
	assert.False(t, s.VeinMinerEnabledFor(axe))
	assert.True(t, s.VeinMinerPartiallyDisabled())
	assert.Contains(t, p.last(), "disabled for axe")

	require.NoError(t, mgr.Do(ctx, p, "vm toggle hoe"))
	assert.Contains(t, p.last(), `Unknown tool category "hoe"`)
}

func TestToggleRequiresPermission(t *testing.T) {
	mgr, sessions := setup(t, nil)
	p, s := join(t, sessions)
	p.perms = permission.Nodes(nil)
	assert.Error(t, mgr.Do(context.Background(), p, "vm toggle"))
	assert.True(t, s.VeinMinerEnabled())
}

func TestMode(t *testing.T) {
	mgr, sessions := setup(t, nil)
	p, s := join(t, sessions)
	ctx := context.Background()

	require.NoError(t, mgr.Do(ctx, p, "vm mode always"))
	assert.Equal(t, veinminer.ActivationAlways, s.ActivationStrategy())
	assert.True(t, s.Dirty())

	require.NoError(t, mgr.Do(ctx, p, "vm mode client"))
	assert.Equal(t, veinminer.ActivationAlways, s.ActivationStrategy())
	assert.Contains(t, p.last(), "requires the client-side mod")

	require.NoError(t, mgr.Do(ctx, p, "vm mode fly"))
	assert.Contains(t, p.last(), "Unknown activation strategy")
}

func TestPattern(t *testing.T) {
	mgr, sessions := setup(t, nil)
	p, s := join(t, sessions)
	ctx := context.Background()

	require.NoError(t, s.HandleHandshake(&network.Handshake{ProtocolVersion: network.Version}))
	require.NoError(t, mgr.Do(ctx, p, "vm pattern test:vertical"))
	assert.Equal(t, "test:vertical", veinminer.KeyString(s.VeinMiningPattern().Key()))
	require.Len(t, p.plugin, 1, "client-side mod is notified")
	msg, err := network.Protocol.DecodeClientbound(p.plugin[0])
	require.NoError(t, err)
	assert.IsType(t, &network.SetPattern{}, msg)

	require.NoError(t, mgr.Do(ctx, p, "vm pattern test:missing"))
	assert.Contains(t, p.last(), "Could not select pattern")

	p.perms = permission.Nodes(map[string]permission.TriState{"veinminer.command.*": permission.True})
	require.NoError(t, mgr.Do(ctx, p, "vm pattern veinminer:default"))
	assert.Contains(t, p.last(), "do not have permission")
	assert.Equal(t, "test:vertical", veinminer.KeyString(s.VeinMiningPattern().Key()))
}

func TestPatternSuggestions(t *testing.T) {
	mgr, sessions := setup(t, nil)
	p, _ := join(t, sessions)
	p.perms = permission.Nodes(map[string]permission.TriState{
		"veinminer.command.pattern": permission.True,
		"veinminer.pattern.test.*":  permission.True,
	})
	s, err := mgr.OfferSuggestions(context.Background(), p, "vm pattern ")
	require.NoError(t, err)
	assert.Equal(t, []string{"test:vertical"}, s)
}

func TestOnlyPlayers(t *testing.T) {
	mgr, _ := setup(t, nil)
	out := new(bytes.Buffer)
	require.NoError(t, mgr.Do(context.Background(), &command.ConsoleSource{W: out}, "vm toggle"))
	assert.Contains(t, out.String(), "Only players")
}

func TestReload(t *testing.T) {
	var reloads int
	mgr, _ := setup(t, func(context.Context) error {
		reloads++
		if reloads > 1 {
			return errors.New("broken config")
		}
		return nil
	})
	out := new(bytes.Buffer)
	console := &command.ConsoleSource{W: out}
	require.NoError(t, mgr.Do(context.Background(), console, "vm reload"))
	require.NoError(t, mgr.Do(context.Background(), console, "vm reload"))
	assert.Equal(t, 2, reloads)
	assert.Contains(t, out.String(), "Reloaded the configuration.")
	assert.Contains(t, out.String(), "broken config")

	noReload, _ := setup(t, nil)
	assert.Error(t, noReload.Do(context.Background(), console, "vm reload"))
}

func TestVersion(t *testing.T) {
	mgr, _ := setup(t, nil)
	out := new(bytes.Buffer)
	require.NoError(t, mgr.Do(context.Background(), &command.ConsoleSource{W: out}, "vm version"))
	assert.Contains(t, out.String(), "VeinMiner test (protocol version 1)")
}
