package proto

import (
	"sync"

	"github.com/go-logr/logr"

	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/util/errs"
	"go.minekube.com/veinminer/pkg/util/sets"
)

// ChannelRegistrar binds message registries to the host's plugin message transport.
// It is implemented by host integrations, Router is a reference implementation.
type ChannelRegistrar[S, C any] interface {
	// RegisterServerbound binds the registry for messages received by the server.
	RegisterServerbound(channel message.ChannelIdentifier, registry *Registry[S])
	// RegisterClientbound binds the registry for messages received by the client.
	RegisterClientbound(channel message.ChannelIdentifier, registry *Registry[C])
}

// Router is a plugin message channel registrar routing incoming
// payloads to the registry of their channel.
type Router[S, C any] struct {
	log logr.Logger

	mu          sync.RWMutex // Protects following fields
	identifiers map[string]message.ChannelIdentifier
	serverbound map[string]*Registry[S]
	clientbound map[string]*Registry[C]
}

var _ ChannelRegistrar[any, any] = (*Router[any, any])(nil)

// NewRouter returns a new Router.
func NewRouter[S, C any](log logr.Logger) *Router[S, C] {
	return &Router[S, C]{
		log:         log.WithName("router"),
		identifiers: map[string]message.ChannelIdentifier{},
		serverbound: map[string]*Registry[S]{},
		clientbound: map[string]*Registry[C]{},
	}
}

func (r *Router[S, C]) RegisterServerbound(channel message.ChannelIdentifier, registry *Registry[S]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identifiers[channel.ID()] = channel
	r.serverbound[channel.ID()] = registry
}

func (r *Router[S, C]) RegisterClientbound(channel message.ChannelIdentifier, registry *Registry[C]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identifiers[channel.ID()] = channel
	r.clientbound[channel.ID()] = registry
}

// Unregister removes the registries of the specified channels.
func (r *Router[S, C]) Unregister(ids ...message.ChannelIdentifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.identifiers, id.ID())
		delete(r.serverbound, id.ID())
		delete(r.clientbound, id.ID())
	}
}

// ChannelIDs returns all registered channel IDs, as announced
// to the other side in a minecraft:register payload.
func (r *Router[S, C]) ChannelIDs() sets.Set[string] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ss := sets.Set[string]{}
	for id := range r.identifiers {
		ss.Insert(id)
	}
	return ss
}

// FromID returns the registered channel identifier for the specified ID.
func (r *Router[S, C]) FromID(channel string) (message.ChannelIdentifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.identifiers[channel]
	return id, ok
}

// HandleServerbound routes a payload received by the server to the listener.
// It returns false if no serverbound registry is bound to the channel.
// Malformed and unknown messages are logged and dropped.
func (r *Router[S, C]) HandleServerbound(channel string, data []byte, listener S) (bool, error) {
	r.mu.RLock()
	registry, ok := r.serverbound[channel]
	id := r.identifiers[channel]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, r.dropSilent(handle(id, registry, data, listener))
}

// HandleClientbound routes a payload received by the client to the listener.
// It returns false if no clientbound registry is bound to the channel.
// Malformed and unknown messages are logged and dropped.
func (r *Router[S, C]) HandleClientbound(channel string, data []byte, listener C) (bool, error) {
	r.mu.RLock()
	registry, ok := r.clientbound[channel]
	id := r.identifiers[channel]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, r.dropSilent(handle(id, registry, data, listener))
}

func (r *Router[S, C]) dropSilent(err error) error {
	if err != nil && errs.IsSilent(err) {
		r.log.V(1).Info("dropped plugin message", "error", err)
		return nil
	}
	return err
}
