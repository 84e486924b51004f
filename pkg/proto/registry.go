package proto

import (
	"errors"
	"fmt"
	"reflect"

	"go.minekube.com/veinminer/pkg/proto/util"
)

// Registry stores the messages of one direction that are handled by listener L.
// Ids are assigned in registration order starting at 0.
type Registry[L any] struct {
	direction Direction
	types     []MessageType             // Gets message type by message id.
	ids       map[MessageType]MessageID // Gets message id by message type.
}

// NewRegistry returns an empty Registry for the direction.
func NewRegistry[L any](direction Direction) *Registry[L] {
	return &Registry[L]{
		direction: direction,
		ids:       map[MessageType]MessageID{},
	}
}

// Direction returns the direction of the registered messages.
func (r *Registry[L]) Direction() Direction { return r.direction }

// Len returns the number of registered messages.
func (r *Registry[L]) Len() int { return len(r.types) }

// Register registers the type of the message and returns its assigned id.
func (r *Registry[L]) Register(of Handler[L]) (MessageID, error) {
	if of == nil {
		return NotFound, errors.New("cannot register nil message")
	}
	t := TypeOf(of)
	if _, ok := r.ids[t]; ok {
		return NotFound, fmt.Errorf("%w: %s %s", ErrDuplicateRegistration, r.direction, t)
	}
	if _, ok := reflect.New(t).Interface().(Handler[L]); !ok {
		return NotFound, fmt.Errorf("message type %s must implement Handler with a pointer receiver", t)
	}
	id := MessageID(len(r.types))
	r.types = append(r.types, t)
	r.ids[t] = id
	return id, nil
}

// MustRegister registers the messages in order and panics on error.
func (r *Registry[L]) MustRegister(of ...Handler[L]) {
	for _, m := range of {
		if _, err := r.Register(m); err != nil {
			panic(err)
		}
	}
}

// IDOf returns the id of the registered message type or NotFound.
func (r *Registry[L]) IDOf(of Message) MessageID {
	if of == nil {
		return NotFound
	}
	id, ok := r.ids[TypeOf(of)]
	if !ok {
		return NotFound
	}
	return id
}

// New returns a new zero valued message of the type registered
// for id or false if not found.
func (r *Registry[L]) New(id MessageID) (Handler[L], bool) {
	if id < 0 || int(id) >= len(r.types) {
		return nil, false
	}
	return reflect.New(r.types[id]).Interface().(Handler[L]), true
}

// Decode decodes the body of the message registered for id.
func (r *Registry[L]) Decode(id MessageID, buf *util.Buffer) (Handler[L], error) {
	msg, ok := r.New(id)
	if !ok {
		return nil, fmt.Errorf("%w %s (%s)", ErrUnknownMessageID, id, r.direction)
	}
	if err := msg.Decode(buf); err != nil {
		return nil, fmt.Errorf("%w: error decoding %s: %w", ErrMalformedMessage, TypeOf(msg), err)
	}
	return msg, nil
}

// Read reads a framed message, the leading VarInt id followed by the body.
func (r *Registry[L]) Read(buf *util.Buffer) (Handler[L], error) {
	id, err := buf.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("%w: error reading message id: %w", ErrMalformedMessage, err)
	}
	return r.Decode(MessageID(id), buf)
}

// Write writes a framed message to buf.
// It returns false if the message type is not registered.
func (r *Registry[L]) Write(buf *util.Buffer, msg Message) (bool, error) {
	id := r.IDOf(msg)
	if id == NotFound {
		return false, nil
	}
	buf.WriteVarInt(int(id))
	if err := msg.Encode(buf); err != nil {
		return true, fmt.Errorf("error encoding %s: %w", TypeOf(msg), err)
	}
	return true, nil
}

// Types returns the registered message types ordered by id.
func (r *Registry[L]) Types() []MessageType {
	return append([]MessageType(nil), r.types...)
}
