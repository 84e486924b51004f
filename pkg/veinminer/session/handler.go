package session

import (
	"errors"
	"fmt"
	"strings"

	"go.minekube.com/common/minecraft/color"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/veinminer"
)

var (
	// ErrUnknownPattern is returned when selecting a pattern that is not registered.
	ErrUnknownPattern = errors.New("unknown vein mining pattern")
	// ErrPatternChangeDenied is returned when a PatternChangeEvent was denied.
	ErrPatternChangeDenied = errors.New("vein mining pattern change denied")
)

// PatternPermission returns the permission required to select the
// pattern with the "namespace:value" key, e.g. veinminer.pattern.veinminer.default.
func PatternPermission(k string) string {
	return "veinminer.pattern." + strings.Replace(k, ":", ".", 1)
}

func versionMismatchReason(server, client int) component.Component {
	reason := "too new. Please downgrade."
	if server > client {
		reason = "out of date. Please update."
	}
	return &component.Text{
		Content: "Your client-side version of VeinMiner is " + reason,
		S:       component.Style{Color: color.Red},
	}
}

func (s *Session) HandleHandshake(msg *network.Handshake) error {
	p, ok := s.Player()
	if !ok {
		return ErrPlayerUnavailable
	}

	if v := network.Protocol.Version(); v != msg.ProtocolVersion {
		s.log.Info("disconnecting client with mismatching protocol version",
			"serverVersion", v, "clientVersion", msg.ProtocolVersion)
		p.Disconnect(versionMismatchReason(v, msg.ProtocolVersion))
		return nil
	}

	defaults := s.env.Defaults
	if !defaults.AllowClientActivation {
		for _, line := range defaults.DisallowedMessage {
			if err := p.SendMessage(line); err != nil {
				return fmt.Errorf("error sending disallowed message: %w", err)
			}
		}
		return nil
	}

	if !s.usingClientMod {
		s.usingClientMod = true
		s.SetActivationStrategy(veinminer.ActivationClient)
		// Switching to the client strategy is not a preference of the player.
		// Repeated handshakes keep changes made since the first one.
		s.dirty = false
	}

	// Reply on the next tick when the host finished initializing the connection.
	s.env.Scheduler.RunLater(1, func() {
		if err := s.send(&network.HandshakeResponse{ClientActivationAllowed: true}); err != nil {
			s.log.Error(err, "error sending handshake response")
			return
		}
		if err := s.SyncPatterns(); err != nil {
			s.log.Error(err, "error syncing vein mining patterns")
		}
	})
	return nil
}

// SyncPatterns sends the patterns the player may select to the client-side mod.
func (s *Session) SyncPatterns() error {
	p, ok := s.Player()
	if !ok {
		return nil
	}
	msg := &network.SyncRegisteredPatterns{}
	for _, k := range s.patternKeys(p) {
		parsed, err := veinminer.ParseKey(k)
		if err != nil {
			return err
		}
		msg.Patterns = append(msg.Patterns, parsed)
	}
	return s.send(msg)
}

func (s *Session) HandleToggleVeinMiner(msg *network.ToggleVeinMiner) error {
	if !s.env.Defaults.AllowClientActivation {
		return nil
	}
	e := &ClientActivateEvent{session: s, activated: msg.Activated}
	s.env.Event.Fire(e)
	if !e.Allowed() {
		return nil
	}
	s.clientKeyPressed = msg.Activated
	return nil
}

func (s *Session) HandleRequestVeinMine(*network.RequestVeinMine) error {
	p, ok := s.Player()
	if !ok {
		return ErrPlayerUnavailable
	}
	return s.send(&network.VeinMineResults{Positions: s.allocate(p)})
}

// allocate returns the positions the player would vein mine
// or nil if the held item or target block cannot vein mine.
func (s *Session) allocate(p Player) []veinminer.Position {
	vm := s.env.VeinMiner
	category, ok := vm.Categories.CategoryFor(p.HeldItem())
	if !ok {
		return nil
	}
	origin, ok := p.TargetBlock()
	if !ok {
		return nil
	}
	world := p.World()
	state, ok := world.BlockState(origin)
	if !ok {
		return nil
	}
	block, ok := vm.Block(state, category)
	if !ok {
		return nil
	}
	return s.VeinMiningPattern().AllocateBlocks(world, origin, block, category.Config)
}

func (s *Session) HandleSelectPattern(msg *network.SelectPattern) error {
	p, ok := s.Player()
	if !ok {
		return ErrPlayerUnavailable
	}
	k := veinminer.KeyString(msg.Pattern)
	if !p.HasPermission(PatternPermission(k)) {
		s.log.V(1).Info("player lacks permission to select pattern", "pattern", k)
		return nil
	}
	pattern, err := s.ChangeVeinMiningPattern(k)
	if err != nil {
		if errors.Is(err, ErrUnknownPattern) || errors.Is(err, ErrPatternChangeDenied) {
			s.log.V(1).Info("ignored pattern selection", "pattern", k, "reason", err)
			return nil
		}
		return err
	}
	return s.send(&network.SetPattern{Pattern: pattern.Key()})
}
