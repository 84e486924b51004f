package session

import (
	"errors"

	"github.com/google/uuid"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/util/permission"
	"go.minekube.com/veinminer/pkg/veinminer"
)

// ErrPlayerUnavailable is returned by operations requiring
// the player of a session after the player has gone.
var ErrPlayerUnavailable = errors.New("player is unavailable")

// Player is the host's connected player a Session belongs to.
type Player interface {
	message.Receiver   // Sends plugin messages to the player's client.
	permission.Subject // Permission checks of the player.
	ID() uuid.UUID     // The player's unique id.
	Active() bool      // Whether the player is still connected.
	Sneaking() bool    // Whether the player is currently sneaking.
	// Disconnect disconnects the player with a reason.
	Disconnect(reason component.Component)
	// SendMessage sends a chat message to the player.
	SendMessage(msg component.Component) error
	// HeldItem returns the item type in the player's main hand.
	HeldItem() veinminer.ItemType
	// TargetBlock returns the position of the block the player is looking at.
	TargetBlock() (veinminer.Position, bool)
	// World returns the block accessor of the player's world.
	World() veinminer.BlockAccessor
}

// handle is a non-owning reference to a Player.
type handle struct {
	p Player
}

// get returns the player if it is still connected.
func (h *handle) get() (Player, bool) {
	if h.p == nil || !h.p.Active() {
		return nil, false
	}
	return h.p, true
}

func (h *handle) release() { h.p = nil }
