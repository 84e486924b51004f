package network

import (
	"fmt"

	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/proto"
	"go.minekube.com/veinminer/pkg/proto/util"
	"go.minekube.com/veinminer/pkg/veinminer"
)

// HandshakeResponse answers a Handshake once the connection is initialized.
type HandshakeResponse struct {
	ClientActivationAllowed bool
}

func (h *HandshakeResponse) Encode(buf *util.Buffer) error {
	buf.WriteBool(h.ClientActivationAllowed)
	return nil
}

func (h *HandshakeResponse) Decode(buf *util.Buffer) (err error) {
	h.ClientActivationAllowed, err = buf.ReadBool()
	return
}

func (h *HandshakeResponse) Handle(l ClientboundListener) error {
	return l.HandleHandshakeResponse(h)
}

// SyncRegisteredPatterns lists the patterns the client may select.
type SyncRegisteredPatterns struct {
	Patterns []key.Key
}

func (s *SyncRegisteredPatterns) Encode(buf *util.Buffer) error {
	buf.WriteVarInt(len(s.Patterns))
	for _, k := range s.Patterns {
		buf.WriteKey(k)
	}
	return nil
}

func (s *SyncRegisteredPatterns) Decode(buf *util.Buffer) error {
	n, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	if n < 0 || n > buf.Remaining() {
		return fmt.Errorf("invalid pattern count %d", n)
	}
	s.Patterns = make([]key.Key, 0, n)
	for range n {
		k, err := buf.ReadKey()
		if err != nil {
			return err
		}
		s.Patterns = append(s.Patterns, k)
	}
	return nil
}

func (s *SyncRegisteredPatterns) Handle(l ClientboundListener) error {
	return l.HandleSyncRegisteredPatterns(s)
}

// VeinMineResults lists the positions a RequestVeinMine would mine.
// No positions means no vein mine would be performed.
type VeinMineResults struct {
	Positions []veinminer.Position
}

// positionSize is the encoded size of one position.
const positionSize = 3 * 4

func (v *VeinMineResults) Encode(buf *util.Buffer) error {
	buf.WriteVarInt(len(v.Positions))
	for _, p := range v.Positions {
		buf.WritePosition(p.X, p.Y, p.Z)
	}
	return nil
}

func (v *VeinMineResults) Decode(buf *util.Buffer) error {
	n, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	if n < 0 || n*positionSize > buf.Remaining() {
		return fmt.Errorf("invalid position count %d for %d remaining bytes: %w",
			n, buf.Remaining(), util.ErrUnderflow)
	}
	v.Positions = make([]veinminer.Position, 0, n)
	for range n {
		x, y, z, err := buf.ReadPosition()
		if err != nil {
			return err
		}
		v.Positions = append(v.Positions, veinminer.At(x, y, z))
	}
	return nil
}

func (v *VeinMineResults) Handle(l ClientboundListener) error {
	return l.HandleVeinMineResults(v)
}

// SetPattern tells the client which pattern is selected.
type SetPattern struct {
	Pattern key.Key
}

func (s *SetPattern) Encode(buf *util.Buffer) error {
	if s.Pattern == nil {
		return fmt.Errorf("pattern key must not be nil")
	}
	buf.WriteKey(s.Pattern)
	return nil
}

func (s *SetPattern) Decode(buf *util.Buffer) (err error) {
	s.Pattern, err = buf.ReadKey()
	return
}

func (s *SetPattern) Handle(l ClientboundListener) error { return l.HandleSetPattern(s) }

var (
	_ proto.Handler[ClientboundListener] = (*HandshakeResponse)(nil)
	_ proto.Handler[ClientboundListener] = (*SyncRegisteredPatterns)(nil)
	_ proto.Handler[ClientboundListener] = (*VeinMineResults)(nil)
	_ proto.Handler[ClientboundListener] = (*SetPattern)(nil)
)
