// Package session tracks the vein mining state of connected players and
// handles the VeinMiner plugin messages sent by their client-side mod.
package session

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/robinbraemer/event"
	"go.minekube.com/common/minecraft/component"
	"golang.org/x/time/rate"

	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/proto"
	"go.minekube.com/veinminer/pkg/scheduler"
	"go.minekube.com/veinminer/pkg/util/componentutil"
	"go.minekube.com/veinminer/pkg/util/sets"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/config"
	"go.minekube.com/veinminer/pkg/veinminer/storage"
)

// Defaults are the configured defaults applied to sessions.
type Defaults struct {
	ActivationStrategy    veinminer.ActivationStrategy
	Pattern               string // Key of the default vein mining pattern.
	AllowClientActivation bool
	DisallowedMessage     []component.Component
}

// DefaultsFrom returns the Defaults of a config.
func DefaultsFrom(cfg *config.Config) (Defaults, error) {
	strategy, err := cfg.ActivationStrategy()
	if err != nil {
		return Defaults{}, err
	}
	pattern, err := veinminer.ParseKey(cfg.DefaultVeinMiningPattern)
	if err != nil {
		return Defaults{}, fmt.Errorf("invalid default vein mining pattern: %w", err)
	}
	d := Defaults{
		ActivationStrategy:    strategy,
		Pattern:               veinminer.KeyString(pattern),
		AllowClientActivation: cfg.Client.AllowActivation,
	}
	for _, line := range cfg.Client.DisallowedMessage {
		d.DisallowedMessage = append(d.DisallowedMessage, componentutil.Text(line))
	}
	return d, nil
}

// Env is the environment shared by sessions.
type Env struct {
	VeinMiner *veinminer.VeinMiner
	Defaults  Defaults
	Event     event.Manager
	Scheduler *scheduler.Scheduler
	Log       logr.Logger
}

// Session is the vein mining state of a player.
// It is not safe for concurrent use and must be used from the
// goroutine driving the host's game ticks.
type Session struct {
	id      uuid.UUID
	player  handle
	env     *Env
	log     logr.Logger
	limiter *rate.Limiter // nil if unlimited

	activationStrategy veinminer.ActivationStrategy
	disabledCategories sets.Set[string]
	veinMiningPattern  veinminer.Pattern // lazily defaulted

	usingClientMod   bool
	clientKeyPressed bool
	veinMining       bool
	dirty            bool
}

var (
	_ network.ServerboundListener = (*Session)(nil)
	_ message.Receiver            = (*Session)(nil)
)

// New returns a new Session of the player with the default activation strategy.
func New(player Player, env *Env) *Session {
	if env.Event == nil {
		env.Event = event.Nop
	}
	return &Session{
		id:                 player.ID(),
		player:             handle{p: player},
		env:                env,
		log:                env.Log.WithName("session").WithValues("player", player.ID()),
		activationStrategy: env.Defaults.ActivationStrategy,
		disabledCategories: sets.New[string](),
	}
}

// ID returns the id of the player.
func (s *Session) ID() uuid.UUID { return s.id }

// Player returns the player if still connected.
func (s *Session) Player() (Player, bool) { return s.player.get() }

// Release drops the reference to the player.
// Operations requiring the player fail with ErrPlayerUnavailable afterwards.
func (s *Session) Release() { s.player.release() }

// Enable enables vein mining for all categories.
func (s *Session) Enable() {
	if s.disabledCategories.Len() != 0 {
		s.dirty = true
		s.disabledCategories = sets.New[string]()
	}
}

// EnableFor enables vein mining for the category.
func (s *Session) EnableFor(category *veinminer.ToolCategory) {
	if s.disabledCategories.Has(category.ID) {
		s.dirty = true
		s.disabledCategories.Delete(category.ID)
	}
}

// Disable disables vein mining for all registered categories.
func (s *Session) Disable() {
	for _, id := range s.env.VeinMiner.Categories.IDs() {
		if !s.disabledCategories.Has(id) {
			s.dirty = true
			s.disabledCategories.Insert(id)
		}
	}
}

// DisableFor disables vein mining for the category.
func (s *Session) DisableFor(category *veinminer.ToolCategory) {
	if !s.disabledCategories.Has(category.ID) {
		s.dirty = true
		s.disabledCategories.Insert(category.ID)
	}
}

// SetVeinMinerEnabled calls Enable or Disable.
func (s *Session) SetVeinMinerEnabled(enable bool) {
	if enable {
		s.Enable()
	} else {
		s.Disable()
	}
}

// SetVeinMinerEnabledFor calls EnableFor or DisableFor.
func (s *Session) SetVeinMinerEnabledFor(enable bool, category *veinminer.ToolCategory) {
	if enable {
		s.EnableFor(category)
	} else {
		s.DisableFor(category)
	}
}

// VeinMinerEnabled returns true if no category is disabled.
func (s *Session) VeinMinerEnabled() bool { return s.disabledCategories.Len() == 0 }

// VeinMinerEnabledFor returns true if the category is not disabled.
func (s *Session) VeinMinerEnabledFor(category *veinminer.ToolCategory) bool {
	return !s.disabledCategories.Has(category.ID)
}

// VeinMinerDisabled returns true if as many categories are disabled
// as are currently registered.
func (s *Session) VeinMinerDisabled() bool {
	return s.disabledCategories.Len() >= s.env.VeinMiner.Categories.Len()
}

// VeinMinerPartiallyDisabled returns true if any category is disabled.
func (s *Session) VeinMinerPartiallyDisabled() bool { return s.disabledCategories.Len() != 0 }

// DisabledCategories returns the sorted ids of the disabled categories.
func (s *Session) DisabledCategories() []string { return sets.Sorted(s.disabledCategories) }

// ActivationStrategy returns the activation strategy.
func (s *Session) ActivationStrategy() veinminer.ActivationStrategy { return s.activationStrategy }

// SetActivationStrategy sets the activation strategy.
func (s *Session) SetActivationStrategy(strategy veinminer.ActivationStrategy) {
	if s.activationStrategy != strategy {
		s.dirty = true
		s.activationStrategy = strategy
	}
}

// VeinMinerActive returns whether vein mining is armed by the activation strategy.
// ErrPlayerUnavailable is returned if the strategy depends on a player that has gone.
func (s *Session) VeinMinerActive() (bool, error) {
	switch s.activationStrategy {
	case veinminer.ActivationAlways:
		return true, nil
	case veinminer.ActivationClient:
		return s.clientKeyPressed, nil
	case veinminer.ActivationSneak, veinminer.ActivationStand:
		p, ok := s.Player()
		if !ok {
			return false, ErrPlayerUnavailable
		}
		return p.Sneaking() == (s.activationStrategy == veinminer.ActivationSneak), nil
	default:
		return false, nil
	}
}

// VeinMiningPattern returns the selected vein mining pattern,
// the configured default pattern if none is selected.
func (s *Session) VeinMiningPattern() veinminer.Pattern {
	if s.veinMiningPattern == nil {
		s.veinMiningPattern = s.defaultPattern()
	}
	return s.veinMiningPattern
}

func (s *Session) defaultPattern() veinminer.Pattern {
	if p, ok := s.env.VeinMiner.Patterns.Get(s.env.Defaults.Pattern); ok {
		return p
	}
	if p, ok := s.env.VeinMiner.Patterns.Get(veinminer.KeyString(veinminer.DefaultPatternKey)); ok {
		return p
	}
	return veinminer.NewDefaultPattern()
}

// SetVeinMiningPattern sets the vein mining pattern. A nil pattern is ignored.
func (s *Session) SetVeinMiningPattern(pattern veinminer.Pattern) {
	if pattern == nil {
		return
	}
	if veinminer.KeyString(s.VeinMiningPattern().Key()) != veinminer.KeyString(pattern.Key()) {
		s.dirty = true
	}
	s.veinMiningPattern = pattern
}

// ChangeVeinMiningPattern fires a PatternChangeEvent for the registered
// pattern with key k and sets the resulting pattern if allowed.
func (s *Session) ChangeVeinMiningPattern(k string) (veinminer.Pattern, error) {
	pattern, ok := s.env.VeinMiner.Patterns.Get(k)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, k)
	}
	e := &PatternChangeEvent{session: s, old: s.VeinMiningPattern(), pattern: pattern}
	s.env.Event.Fire(e)
	if !e.Allowed() {
		return nil, ErrPatternChangeDenied
	}
	s.SetVeinMiningPattern(e.Pattern())
	return e.Pattern(), nil
}

// VeinMining returns true while the player is vein mining.
func (s *Session) VeinMining() bool { return s.veinMining }

// SetVeinMining marks the player as vein mining.
func (s *Session) SetVeinMining(veinMining bool) { s.veinMining = veinMining }

// Dirty returns true if the session has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// SetDirty sets the dirty flag.
func (s *Session) SetDirty(dirty bool) { s.dirty = dirty }

// UsingClientMod returns true if the player's client-side mod completed the handshake.
func (s *Session) UsingClientMod() bool { return s.usingClientMod }

// ClientKeyPressed returns true while the client activation key is pressed.
func (s *Session) ClientKeyPressed() bool { return s.clientKeyPressed }

// Snapshot returns the persistable state of the session.
func (s *Session) Snapshot() *storage.Data {
	d := &storage.Data{
		ActivationStrategy: s.activationStrategy.String(),
		DisabledCategories: s.DisabledCategories(),
	}
	if s.veinMiningPattern != nil {
		d.VeinMiningPattern = veinminer.KeyString(s.veinMiningPattern.Key())
	}
	return d
}

// Apply applies stored data without marking the session dirty.
// Unknown values are skipped and returned as errors.
// The activation strategy is kept while the client-side mod is in use.
func (s *Session) Apply(d *storage.Data) (errs []error) {
	if d == nil {
		return nil
	}
	if d.ActivationStrategy != "" && !s.usingClientMod {
		strategy, err := veinminer.ParseActivationStrategy(d.ActivationStrategy)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.activationStrategy = strategy
		}
	}
	disabled := sets.New[string]()
	for _, id := range d.DisabledCategories {
		if _, ok := s.env.VeinMiner.Categories.Get(id); !ok {
			errs = append(errs, fmt.Errorf("unknown tool category %q", id))
			continue
		}
		disabled.Insert(id)
	}
	s.disabledCategories = disabled
	if d.VeinMiningPattern != "" {
		if p, ok := s.env.VeinMiner.Patterns.Get(d.VeinMiningPattern); ok {
			s.veinMiningPattern = p
		} else {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownPattern, d.VeinMiningPattern))
		}
	}
	return errs
}

// reload prunes state no longer valid with the environment's vein miner.
func (s *Session) reload() {
	vm := s.env.VeinMiner
	s.disabledCategories.Retain(func(id string) bool {
		_, ok := vm.Categories.Get(id)
		return ok
	})
	if s.veinMiningPattern != nil {
		if p, ok := vm.Patterns.Get(veinminer.KeyString(s.veinMiningPattern.Key())); ok {
			s.veinMiningPattern = p
		} else {
			s.veinMiningPattern = nil
		}
	}
	if s.usingClientMod && !s.env.Defaults.AllowClientActivation {
		s.clientKeyPressed = false
	}
}

// SendPluginMessage sends a plugin message to the player.
// It is a no-op if the player has gone.
func (s *Session) SendPluginMessage(id message.ChannelIdentifier, data []byte) error {
	p, ok := s.Player()
	if !ok {
		return nil
	}
	return p.SendPluginMessage(id, data)
}

func (s *Session) send(msg proto.Handler[network.ClientboundListener]) error {
	return network.Protocol.SendToClient(s, msg)
}

// patternKeys returns the keys of the patterns the player may select.
func (s *Session) patternKeys(p Player) []string {
	keys := s.env.VeinMiner.Patterns.Keys()
	return slices.DeleteFunc(keys, func(k string) bool {
		return !p.HasPermission(PatternPermission(k))
	})
}
