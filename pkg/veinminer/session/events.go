package session

import (
	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/veinminer"
)

// ClientActivateEvent is fired when a player presses or releases
// the activation key of the client-side mod.
type ClientActivateEvent struct {
	session   *Session
	activated bool
	denied    bool
}

// Session returns the session of the player.
func (e *ClientActivateEvent) Session() *Session { return e.session }

// Activated returns true if the key was pressed and false if it was released.
func (e *ClientActivateEvent) Activated() bool { return e.activated }

// Allowed returns true if the activation is applied to the session.
func (e *ClientActivateEvent) Allowed() bool { return !e.denied }

// SetAllowed allows or denies the activation.
func (e *ClientActivateEvent) SetAllowed(allowed bool) { e.denied = !allowed }

// PatternChangeEvent is fired when a player changes the vein mining pattern.
type PatternChangeEvent struct {
	session *Session
	old     veinminer.Pattern
	pattern veinminer.Pattern
	denied  bool
}

// Session returns the session of the player.
func (e *PatternChangeEvent) Session() *Session { return e.session }

// Old returns the pattern before the change.
func (e *PatternChangeEvent) Old() veinminer.Pattern { return e.old }

// Pattern returns the pattern to change to.
func (e *PatternChangeEvent) Pattern() veinminer.Pattern { return e.pattern }

// SetPattern replaces the pattern to change to.
// A nil pattern is ignored.
func (e *PatternChangeEvent) SetPattern(p veinminer.Pattern) {
	if p != nil {
		e.pattern = p
	}
}

// Key returns the key of the pattern to change to.
func (e *PatternChangeEvent) Key() key.Key { return e.pattern.Key() }

// Allowed returns true if the pattern change is allowed.
func (e *PatternChangeEvent) Allowed() bool { return !e.denied }

// SetAllowed allows or denies the pattern change.
func (e *PatternChangeEvent) SetAllowed(allowed bool) { e.denied = !allowed }
