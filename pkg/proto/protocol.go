package proto

import (
	"fmt"

	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/proto/util"
	"go.minekube.com/veinminer/pkg/util/errs"
)

// Protocol binds a channel and a protocol version to the messages
// sent to the server, handled by S, and to the client, handled by C.
// A Protocol must not be mutated after New returned.
type Protocol[S, C any] struct {
	channel     message.ChannelIdentifier
	version     int
	serverbound *Registry[S]
	clientbound *Registry[C]
}

// New returns a new Protocol whose registries are populated by the
// register functions. The order of registration is the wire contract.
func New[S, C any](
	channel message.ChannelIdentifier,
	version int,
	registerServerbound func(r *Registry[S]) error,
	registerClientbound func(r *Registry[C]) error,
) (*Protocol[S, C], error) {
	if channel == nil {
		return nil, fmt.Errorf("protocol channel must not be nil")
	}
	if version < 0 {
		return nil, fmt.Errorf("protocol version must not be negative, got %d", version)
	}
	p := &Protocol[S, C]{
		channel:     channel,
		version:     version,
		serverbound: NewRegistry[S](ServerBound),
		clientbound: NewRegistry[C](ClientBound),
	}
	if registerServerbound != nil {
		if err := registerServerbound(p.serverbound); err != nil {
			return nil, fmt.Errorf("error registering serverbound messages of %s: %w", channel.ID(), err)
		}
	}
	if registerClientbound != nil {
		if err := registerClientbound(p.clientbound); err != nil {
			return nil, fmt.Errorf("error registering clientbound messages of %s: %w", channel.ID(), err)
		}
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew[S, C any](
	channel message.ChannelIdentifier,
	version int,
	registerServerbound func(r *Registry[S]) error,
	registerClientbound func(r *Registry[C]) error,
) *Protocol[S, C] {
	p, err := New(channel, version, registerServerbound, registerClientbound)
	if err != nil {
		panic(err)
	}
	return p
}

// Channel returns the channel the protocol communicates on.
func (p *Protocol[S, C]) Channel() message.ChannelIdentifier { return p.channel }

// Version returns the protocol version exchanged during the handshake.
func (p *Protocol[S, C]) Version() int { return p.version }

// Serverbound returns the registry of messages sent to the server.
func (p *Protocol[S, C]) Serverbound() *Registry[S] { return p.serverbound }

// Clientbound returns the registry of messages sent to the client.
func (p *Protocol[S, C]) Clientbound() *Registry[C] { return p.clientbound }

// Encode returns the framed payload of msg for the direction.
// It panics with a *ProtocolMisuseError if the message type is not registered.
func (p *Protocol[S, C]) Encode(direction Direction, msg Message) ([]byte, error) {
	buf := new(util.Buffer)
	var (
		ok  bool
		err error
	)
	switch direction {
	case ServerBound:
		ok, err = p.serverbound.Write(buf, msg)
	case ClientBound:
		ok, err = p.clientbound.Write(buf, msg)
	}
	if !ok {
		panic(&ProtocolMisuseError{
			Channel:   p.channel.ID(),
			Direction: direction,
			Type:      typeOfOrNil(msg),
		})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendTo encodes msg and sends it to the receiver on the protocol's channel.
// It panics with a *ProtocolMisuseError if the message type is not registered.
func (p *Protocol[S, C]) SendTo(direction Direction, receiver message.Receiver, msg Message) error {
	data, err := p.Encode(direction, msg)
	if err != nil {
		return err
	}
	return receiver.SendPluginMessage(p.channel, data)
}

// SendToClient sends a clientbound message to the receiver.
func (p *Protocol[S, C]) SendToClient(receiver message.Receiver, msg Handler[C]) error {
	return p.SendTo(ClientBound, receiver, msg)
}

// SendToServer sends a serverbound message to the receiver.
func (p *Protocol[S, C]) SendToServer(receiver message.Receiver, msg Handler[S]) error {
	return p.SendTo(ServerBound, receiver, msg)
}

// DecodeServerbound decodes a payload sent to the server.
func (p *Protocol[S, C]) DecodeServerbound(data []byte) (Handler[S], error) {
	return p.serverbound.Read(util.NewBuffer(data))
}

// DecodeClientbound decodes a payload sent to the client.
func (p *Protocol[S, C]) DecodeClientbound(data []byte) (Handler[C], error) {
	return p.clientbound.Read(util.NewBuffer(data))
}

// HandleServerbound decodes a payload sent to the server and dispatches it to the listener.
// Decode errors are silent errors, the message should be dropped.
func (p *Protocol[S, C]) HandleServerbound(data []byte, listener S) error {
	return handle(p.channel, p.serverbound, data, listener)
}

// HandleClientbound decodes a payload sent to the client and dispatches it to the listener.
// Decode errors are silent errors, the message should be dropped.
func (p *Protocol[S, C]) HandleClientbound(data []byte, listener C) error {
	return handle(p.channel, p.clientbound, data, listener)
}

// RegisterChannels hands both registries to the host transport.
func (p *Protocol[S, C]) RegisterChannels(registrar ChannelRegistrar[S, C]) {
	registrar.RegisterServerbound(p.channel, p.serverbound)
	registrar.RegisterClientbound(p.channel, p.clientbound)
}

func handle[L any](channel message.ChannelIdentifier, r *Registry[L], data []byte, listener L) error {
	msg, err := r.Read(util.NewBuffer(data))
	if err != nil {
		return errs.WrapSilent(fmt.Errorf("error reading %s message on %s: %w",
			r.Direction(), channel.ID(), err))
	}
	if err = msg.Handle(listener); err != nil {
		return fmt.Errorf("error handling %s on %s: %w", TypeOf(msg), channel.ID(), err)
	}
	return nil
}

func typeOfOrNil(m Message) MessageType {
	if m == nil {
		return nil
	}
	return TypeOf(m)
}
