package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/robinbraemer/event"
	"golang.org/x/time/rate"

	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/proto"
	"go.minekube.com/veinminer/pkg/scheduler"
	"go.minekube.com/veinminer/pkg/util/sets"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/storage"
)

// Default rate limit of VeinMiner plugin messages per player.
const (
	DefaultMessageRate  rate.Limit = 20
	DefaultMessageBurst            = 40
)

// Options are the options of a Manager.
type Options struct {
	VeinMiner *veinminer.VeinMiner // Required.
	Defaults  Defaults
	Scheduler *scheduler.Scheduler // Required.
	Event     event.Manager        // Defaults to event.Nop.
	Store     storage.Store        // Player data is not persisted if nil.
	Log       logr.Logger

	// MessageRate limits the plugin messages handled per second and player.
	// Messages over the limit are dropped. Unlimited if 0.
	MessageRate  rate.Limit
	MessageBurst int
}

// Manager manages the sessions of connected players and routes
// their plugin messages.
type Manager struct {
	log          logr.Logger
	store        storage.Store
	router       *proto.Router[network.ServerboundListener, network.ClientboundListener]
	messageRate  rate.Limit
	messageBurst int

	mu       sync.RWMutex // Protects following fields
	env      *Env
	sessions map[uuid.UUID]*Session
}

// NewManager returns a new Manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.VeinMiner == nil {
		return nil, errors.New("vein miner must not be nil")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("scheduler must not be nil")
	}
	if opts.Event == nil {
		opts.Event = event.Nop
	}
	log := opts.Log.WithName("sessions")
	m := &Manager{
		log:          log,
		store:        opts.Store,
		router:       proto.NewRouter[network.ServerboundListener, network.ClientboundListener](log),
		messageRate:  opts.MessageRate,
		messageBurst: max(opts.MessageBurst, 1),
		env: &Env{
			VeinMiner: opts.VeinMiner,
			Defaults:  opts.Defaults,
			Event:     opts.Event,
			Scheduler: opts.Scheduler,
			Log:       opts.Log,
		},
		sessions: map[uuid.UUID]*Session{},
	}
	network.Protocol.RegisterChannels(m.router)
	return m, nil
}

// ChannelIDs returns the ids of the plugin message channels handled by the Manager.
func (m *Manager) ChannelIDs() sets.Set[string] { return m.router.ChannelIDs() }

// VeinMiner returns the current vein mining definitions.
func (m *Manager) VeinMiner() *veinminer.VeinMiner {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.env.VeinMiner
}

// Add creates the session of a joining player and applies its stored data.
// The existing session is returned if the player already has one.
func (m *Manager) Add(ctx context.Context, player Player) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[player.ID()]; ok {
		return s, nil
	}
	s := New(player, m.env)
	if m.messageRate > 0 {
		s.limiter = rate.NewLimiter(m.messageRate, m.messageBurst)
	}
	if m.store != nil {
		data, err := m.store.Load(ctx, player.ID())
		if err != nil {
			return nil, fmt.Errorf("error loading player data: %w", err)
		}
		for _, err = range s.Apply(data) {
			m.log.Info("skipped invalid player data", "player", player.ID(), "error", err)
		}
	}
	m.sessions[player.ID()] = s
	return s, nil
}

// Get returns the session of the player.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Sessions returns all sessions.
func (m *Manager) Sessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		l = append(l, s)
	}
	return l
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Remove removes the session of a leaving player and saves it if dirty.
func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	s.Release()
	if !s.Dirty() {
		return nil
	}
	return m.Save(ctx, s)
}

// Save saves the session and clears its dirty flag.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, s.ID(), s.Snapshot()); err != nil {
		return fmt.Errorf("error saving player data of %s: %w", s.ID(), err)
	}
	s.SetDirty(false)
	return nil
}

// SaveAll saves all dirty sessions.
func (m *Manager) SaveAll(ctx context.Context) error {
	var errs []error
	for _, s := range m.Sessions() {
		if !s.Dirty() {
			continue
		}
		if err := m.Save(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reload replaces the vein mining definitions and defaults of all sessions.
// Disabled categories and selected patterns no longer registered are dropped.
func (m *Manager) Reload(vm *veinminer.VeinMiner, defaults Defaults) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env.VeinMiner = vm
	m.env.Defaults = defaults
	for _, s := range m.sessions {
		s.reload()
	}
	m.log.Info("reloaded sessions", "sessions", len(m.sessions), "categories", vm.Categories.Len())
}

// HandlePluginMessage handles a plugin message sent by the player's client.
// It returns false if the player has no session or the channel is not
// handled by the Manager, in which case the host should forward the message.
func (m *Manager) HandlePluginMessage(id uuid.UUID, channel string, data []byte) (bool, error) {
	s, ok := m.Get(id)
	if !ok {
		return false, nil
	}
	if _, ok = m.router.FromID(channel); !ok {
		return false, nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		m.log.V(1).Info("dropped plugin message over rate limit", "player", id)
		return true, nil
	}
	return m.router.HandleServerbound(channel, data, s)
}
