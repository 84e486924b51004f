package plugin

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/command"
	"go.minekube.com/veinminer/pkg/internal/reload"
	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/scheduler"
	"go.minekube.com/veinminer/pkg/util/errs"
	"go.minekube.com/veinminer/pkg/util/permission"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/config"
	"go.minekube.com/veinminer/pkg/veinminer/storage"
)

type player struct{ id uuid.UUID }

func (p *player) ID() uuid.UUID                                             { return p.id }
func (p *player) Active() bool                                              { return true }
func (p *player) Sneaking() bool                                            { return false }
func (p *player) Disconnect(component.Component)                            {}
func (p *player) SendMessage(component.Component) error                     { return nil }
func (p *player) SendPluginMessage(message.ChannelIdentifier, []byte) error { return nil }
func (p *player) PermissionValue(string) permission.TriState                { return permission.True }
func (p *player) HasPermission(string) bool                                 { return true }
func (p *player) HeldItem() veinminer.ItemType                              { return "" }
func (p *player) TargetBlock() (veinminer.Position, bool)                   { return veinminer.Position{}, false }
func (p *player) World() veinminer.BlockAccessor                            { return nil }

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, errs.ErrMissingConfig)

	cfg := config.Default()
	cfg.DefaultVeinMiningPattern = "test:missing"
	_, err = New(Options{Config: cfg, Store: &storage.Memory{}, Logger: logr.Discard()})
	assert.Error(t, err, "unknown default pattern")

	cfg.DefaultVeinMiningPattern = "test:vertical"
	p, err := New(Options{
		Config:   cfg,
		Patterns: []veinminer.Pattern{veinminer.NewPattern(key.New("test", "vertical"), veinminer.Up, veinminer.Down)},
		Store:    &storage.Memory{},
		Commands: new(command.Manager),
		Logger:   logr.Discard(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"veinminer:default", "test:vertical"}, p.Patterns().Keys())
	assert.Equal(t, 3, p.Sessions().VeinMiner().Categories.Len())
	assert.Error(t, p.Reload(context.Background()), "no config file")
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeConfig(t, path, "defaultActivationStrategy: sneak\n")
	ctx := context.Background()

	v := config.Default()
	p, err := New(Options{Config: v, ConfigFile: path, Store: &storage.Memory{}, Logger: logr.Discard()})
	require.NoError(t, err)
	s, err := p.Sessions().Add(ctx, &player{id: uuid.New()})
	require.NoError(t, err)
	s.Disable()

	var updated *reload.ConfigUpdateEvent[config.Config]
	reload.Subscribe(p.Event(), func(e *reload.ConfigUpdateEvent[config.Config]) { updated = e })

	writeConfig(t, path, `
defaultActivationStrategy: always
categories:
  pickaxe:
    maxVeinSize: 16
    items: [minecraft:iron_pickaxe]
    blocks: [minecraft:iron_ore]
`)
	require.NoError(t, p.Reload(ctx))
	require.NotNil(t, updated)
	assert.Same(t, v, updated.PrevConfig)
	assert.Same(t, p.Config(), updated.Config)
	assert.Equal(t, "always", p.Config().DefaultActivationStrategy)
	assert.Equal(t, []string{"pickaxe"}, s.DisabledCategories())
	assert.Equal(t, 1, p.Sessions().VeinMiner().Categories.Len())

	writeConfig(t, path, "defaultActivationStrategy: fly\n")
	assert.Error(t, p.Reload(ctx))
	assert.Equal(t, "always", p.Config().DefaultActivationStrategy, "invalid config is not applied")
}

func TestStartSavesSessions(t *testing.T) {
	store := &storage.Memory{}
	p, err := New(Options{Config: config.Default(), Store: store, Logger: logr.Discard()})
	require.NoError(t, err)
	s, err := p.Sessions().Add(context.Background(), &player{id: uuid.New()})
	require.NoError(t, err)
	s.SetActivationStrategy(veinminer.ActivationAlways)

	var ran bool
	p.Scheduler().RunLater(1, func() { ran = true })

	ctx, cancel := context.WithTimeout(context.Background(), 10*scheduler.TickDuration)
	defer cancel()
	require.NoError(t, p.Start(ctx))
	assert.True(t, ran)
	assert.Equal(t, 1, store.Len())
	assert.False(t, s.Dirty())
}

func TestStartReloadsOnTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeConfig(t, path, "defaultActivationStrategy: sneak\n")

	p, err := New(Options{Config: config.Default(), ConfigFile: path, Store: &storage.Memory{}, Logger: logr.Discard()})
	require.NoError(t, err)
	s, err := p.Sessions().Add(context.Background(), &player{id: uuid.New()})
	require.NoError(t, err)

	// Keep mutating the session on every tick while the config changes.
	var churn func()
	churn = func() {
		if s.VeinMinerDisabled() {
			s.Enable()
		} else {
			s.Disable()
		}
		_ = s.SyncPatterns()
		p.Scheduler().RunLater(1, churn)
	}
	p.Scheduler().RunLater(1, churn)

	updated := make(chan *config.Config, 16)
	reload.Subscribe(p.Event(), func(e *reload.ConfigUpdateEvent[config.Config]) {
		select {
		case updated <- e.Config:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	const content = `
defaultActivationStrategy: always
categories:
  pickaxe:
    maxVeinSize: 16
    items: [minecraft:iron_pickaxe]
    blocks: [minecraft:iron_ore]
`
	// Rewrite until the watcher applied the complete file.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(content), 0o644)
		for {
			select {
			case cfg := <-updated:
				if cfg.DefaultActivationStrategy == "always" && len(cfg.Categories) == 1 {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 20*scheduler.TickDuration)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "always", p.Config().DefaultActivationStrategy)
	assert.Equal(t, 1, p.Sessions().VeinMiner().Categories.Len())
}
