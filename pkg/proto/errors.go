package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMessage is returned when a message body is truncated or invalid.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrUnknownMessageID is returned when no message is registered for a decoded id.
	ErrUnknownMessageID = errors.New("unknown message id")
	// ErrDuplicateRegistration is returned when a message type is registered twice.
	ErrDuplicateRegistration = errors.New("message type already registered")
)

// ProtocolMisuseError is the panic value when sending a message
// type that is not registered for the direction it is sent to.
type ProtocolMisuseError struct {
	Channel   string
	Direction Direction
	Type      MessageType
}

func (e *ProtocolMisuseError) Error() string {
	return fmt.Sprintf("message type %s is not registered %s on channel %s",
		e.Type, e.Direction, e.Channel)
}
