package network

import (
	"fmt"

	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/proto"
	"go.minekube.com/veinminer/pkg/proto/util"
)

// Handshake is the first message sent by the client-side mod.
type Handshake struct {
	ProtocolVersion int
}

func (h *Handshake) Encode(buf *util.Buffer) error {
	buf.WriteVarInt(h.ProtocolVersion)
	return nil
}

func (h *Handshake) Decode(buf *util.Buffer) (err error) {
	h.ProtocolVersion, err = buf.ReadVarInt()
	return
}

func (h *Handshake) Handle(l ServerboundListener) error { return l.HandleHandshake(h) }

// ToggleVeinMiner is sent when the client activation key is pressed or released.
type ToggleVeinMiner struct {
	Activated bool
}

func (t *ToggleVeinMiner) Encode(buf *util.Buffer) error {
	buf.WriteBool(t.Activated)
	return nil
}

func (t *ToggleVeinMiner) Decode(buf *util.Buffer) (err error) {
	t.Activated, err = buf.ReadBool()
	return
}

func (t *ToggleVeinMiner) Handle(l ServerboundListener) error { return l.HandleToggleVeinMiner(t) }

// RequestVeinMine asks the server which blocks would be vein mined at
// the block the player is looking at. The target is resolved server-side.
type RequestVeinMine struct{}

func (*RequestVeinMine) Encode(*util.Buffer) error { return nil }
func (*RequestVeinMine) Decode(*util.Buffer) error { return nil }

func (r *RequestVeinMine) Handle(l ServerboundListener) error { return l.HandleRequestVeinMine(r) }

// SelectPattern is sent when the player selects a vein mining pattern.
type SelectPattern struct {
	Pattern key.Key
}

func (s *SelectPattern) Encode(buf *util.Buffer) error {
	if s.Pattern == nil {
		return fmt.Errorf("pattern key must not be nil")
	}
	buf.WriteKey(s.Pattern)
	return nil
}

func (s *SelectPattern) Decode(buf *util.Buffer) (err error) {
	s.Pattern, err = buf.ReadKey()
	return
}

func (s *SelectPattern) Handle(l ServerboundListener) error { return l.HandleSelectPattern(s) }

var (
	_ proto.Handler[ServerboundListener] = (*Handshake)(nil)
	_ proto.Handler[ServerboundListener] = (*ToggleVeinMiner)(nil)
	_ proto.Handler[ServerboundListener] = (*RequestVeinMine)(nil)
	_ proto.Handler[ServerboundListener] = (*SelectPattern)(nil)
)
