// Package plugin assembles VeinMiner for a host: configuration, player
// sessions, the tick scheduler, the /veinminer command and config reloading.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"
	"github.com/spf13/viper"

	"go.minekube.com/veinminer/pkg/command"
	"go.minekube.com/veinminer/pkg/internal/reload"
	"go.minekube.com/veinminer/pkg/scheduler"
	"go.minekube.com/veinminer/pkg/util/errs"
	"go.minekube.com/veinminer/pkg/veinminer"
	vmcommand "go.minekube.com/veinminer/pkg/veinminer/command"
	"go.minekube.com/veinminer/pkg/veinminer/config"
	"go.minekube.com/veinminer/pkg/veinminer/session"
	"go.minekube.com/veinminer/pkg/veinminer/storage"
	"go.minekube.com/veinminer/pkg/version"
)

// Options are Plugin options.
type Options struct {
	// Config requires a valid configuration.
	Config *config.Config
	// ConfigFile is the file Config was loaded from.
	// Reload is only possible if set.
	ConfigFile string
	// Patterns are registered in addition to the default pattern.
	Patterns []veinminer.Pattern
	// Event is the event manager events are fired on.
	// If not set, a new one is created.
	Event event.Manager
	// Store persists player data.
	// If not set, a storage.FileStore in the configured storage directory is used.
	Store storage.Store
	// Commands is the command manager /veinminer is registered to.
	// No command is registered if not set.
	Commands *command.Manager
	// Logger is the logger used for the plugin and its components.
	Logger logr.Logger
}

// Plugin is an assembled VeinMiner instance.
type Plugin struct {
	log        logr.Logger
	configFile string
	patterns   *veinminer.PatternRegistry
	event      event.Manager
	scheduler  *scheduler.Scheduler
	sessions   *session.Manager

	mu     sync.Mutex // Protects config
	config *config.Config
}

// New returns a new Plugin.
func New(opts Options) (*Plugin, error) {
	if opts.Config == nil {
		return nil, errs.ErrMissingConfig
	}
	log := opts.Logger.WithName("veinminer")

	patterns, err := veinminer.NewPatternRegistry(
		append([]veinminer.Pattern{veinminer.NewDefaultPattern()}, opts.Patterns...)...)
	if err != nil {
		return nil, fmt.Errorf("error registering patterns: %w", err)
	}
	vm, defaults, err := build(log, opts.Config, patterns)
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		log:        log,
		configFile: opts.ConfigFile,
		patterns:   patterns,
		event:      opts.Event,
		scheduler:  scheduler.New(log),
		config:     opts.Config,
	}
	if p.event == nil {
		p.event = event.New()
	}
	store := opts.Store
	if store == nil {
		store = storage.NewFileStore(opts.Config.Storage.Directory)
	}
	p.sessions, err = session.NewManager(session.Options{
		VeinMiner: vm,
		Defaults:  defaults,
		Scheduler: p.scheduler,
		Event:     p.event,
		Store:     store,
		Log:       log,

		MessageRate:  session.DefaultMessageRate,
		MessageBurst: session.DefaultMessageBurst,
	})
	if err != nil {
		return nil, err
	}

	if opts.Commands != nil {
		cmdOpts := vmcommand.Options{
			Sessions: p.sessions,
			Version:  version.String(),
		}
		if p.configFile != "" {
			cmdOpts.Reload = p.Reload
		}
		vmcommand.Register(opts.Commands, cmdOpts)
	}
	return p, nil
}

// build validates cfg and returns the vein mining definitions and session defaults.
func build(log logr.Logger, cfg *config.Config, patterns *veinminer.PatternRegistry) (*veinminer.VeinMiner, session.Defaults, error) {
	warns, invalid := cfg.Validate(patterns.Keys()...)
	for _, warn := range warns {
		log.Info("config validation warning", "warn", warn)
	}
	if len(invalid) != 0 {
		return nil, session.Defaults{}, fmt.Errorf("invalid config: %w", errors.Join(invalid...))
	}
	vm, invalid := cfg.VeinMiner(patterns)
	if len(invalid) != 0 {
		return nil, session.Defaults{}, fmt.Errorf("invalid config: %w", errors.Join(invalid...))
	}
	defaults, err := session.DefaultsFrom(cfg)
	if err != nil {
		return nil, session.Defaults{}, fmt.Errorf("invalid config: %w", err)
	}
	return vm, defaults, nil
}

// Sessions returns the session manager.
func (p *Plugin) Sessions() *session.Manager { return p.sessions }

// Scheduler returns the tick scheduler.
// Hosts running their own game loop call its Tick method once per tick.
func (p *Plugin) Scheduler() *scheduler.Scheduler { return p.scheduler }

// Event returns the event manager.
func (p *Plugin) Event() event.Manager { return p.event }

// Patterns returns the registered vein mining patterns.
func (p *Plugin) Patterns() *veinminer.PatternRegistry { return p.patterns }

// Config returns the current configuration.
func (p *Plugin) Config() *config.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// Reload reloads the configuration file and applies it to all sessions.
// The current configuration is kept if the new one is invalid.
// It must be called on the goroutine driving the scheduler.
func (p *Plugin) Reload(context.Context) error {
	if p.configFile == "" {
		return errors.New("no config file to reload from")
	}
	v := viper.New()
	v.SetConfigFile(p.configFile)
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	vm, defaults, err := build(p.log, cfg, p.patterns)
	if err != nil {
		return err
	}

	p.mu.Lock()
	prev := p.config
	p.config = cfg
	p.mu.Unlock()

	p.sessions.Reload(vm, defaults)
	reload.FireConfigUpdate(p.event, cfg, prev)
	return nil
}

// Start runs the tick scheduler and watches the config file for changes
// until ctx is canceled. Dirty sessions are saved before returning.
// Hosts driving the scheduler themselves do not call Start.
func (p *Plugin) Start(ctx context.Context) error {
	if p.configFile != "" {
		watchCtx := logr.NewContext(ctx, p.log)
		// Sessions are only touched on the tick goroutine.
		if err := reload.Watch(watchCtx, p.configFile, func() error {
			p.scheduler.RunLater(1, func() {
				if err := p.Reload(ctx); err != nil {
					p.log.Error(err, "error reloading config")
				}
			})
			return nil
		}); err != nil {
			return fmt.Errorf("error watching config file: %w", err)
		}
	}
	p.log.Info("started", "version", version.String(), "categories", p.sessions.VeinMiner().Categories.Len())
	p.scheduler.Run(ctx, scheduler.TickDuration)
	return p.sessions.SaveAll(context.WithoutCancel(ctx))
}
