// Package network defines the VeinMiner plugin message protocol
// spoken between the server and the client-side mod.
package network

import (
	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/proto"
)

// Version is the protocol version both sides must agree on in the handshake.
const Version = 1

// Channel is the plugin message channel of the protocol.
var Channel = message.MustChannelIdentifier("veinminer", "veinminer")

// Protocol is the VeinMiner plugin message protocol.
// The registration order of the messages is the wire contract.
var Protocol = proto.MustNew(Channel, Version,
	func(r *proto.Registry[ServerboundListener]) error {
		r.MustRegister(
			&Handshake{},
			&ToggleVeinMiner{},
			&RequestVeinMine{},
			&SelectPattern{},
		)
		return nil
	},
	func(r *proto.Registry[ClientboundListener]) error {
		r.MustRegister(
			&HandshakeResponse{},
			&SyncRegisteredPatterns{},
			&VeinMineResults{},
			&SetPattern{},
		)
		return nil
	},
)

// ServerboundListener handles messages sent by the client to the server.
type ServerboundListener interface {
	HandleHandshake(msg *Handshake) error
	HandleToggleVeinMiner(msg *ToggleVeinMiner) error
	HandleRequestVeinMine(msg *RequestVeinMine) error
	HandleSelectPattern(msg *SelectPattern) error
}

// ClientboundListener handles messages sent by the server to the client.
type ClientboundListener interface {
	HandleHandshakeResponse(msg *HandshakeResponse) error
	HandleSyncRegisteredPatterns(msg *SyncRegisteredPatterns) error
	HandleVeinMineResults(msg *VeinMineResults) error
	HandleSetPattern(msg *SetPattern) error
}
