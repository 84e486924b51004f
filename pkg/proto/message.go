// Package proto implements a small plugin message protocol layer:
// messages are framed as a VarInt message id followed by the message body
// and are routed by direction through per-direction message registries.
package proto

import (
	"fmt"
	"reflect"

	"go.minekube.com/veinminer/pkg/proto/util"
)

// Message should be implemented by any plugin message.
// It is the layer of the message's body, excluding the leading message id.
type Message interface {
	Encode(buf *util.Buffer) error // Encodes the message body into the buffer
	Decode(buf *util.Buffer) error // Decodes the message body from the buffer
}

// Handler is a Message that can be dispatched to a listener L.
// A Registry only accepts messages handled by its listener type,
// so every decoded message has exactly one handler.
type Handler[L any] interface {
	Message
	Handle(listener L) error
}

// MessageType is the reflect type of a message, pointers stripped.
type MessageType reflect.Type

// TypeOf returns the non-pointer type of m.
func TypeOf(m Message) MessageType {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// MessageID identifies a message within one direction.
type MessageID int

// NotFound is returned by Registry.IDOf for unregistered message types.
const NotFound MessageID = -1

func (id MessageID) String() string {
	return fmt.Sprintf("%#02x", int(id))
}

// Direction is the direction a message is meant to go to/come from.
type Direction uint8

const (
	ClientBound Direction = iota // Messages sent to the client.
	ServerBound                  // Messages sent to the server.
)

func (d Direction) String() string {
	switch d {
	case ServerBound:
		return "ServerBound"
	case ClientBound:
		return "ClientBound"
	}
	return "UnknownBound"
}
