// Package message defines plugin message channel identifiers and the
// sinks that plugin message payloads can be sent to.
package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ChannelIdentifier is a channel identifier for use with plugin messaging.
type ChannelIdentifier interface {
	// Returns the channel identifier.
	ID() string
}

// Receiver can receive plugin messages.
// It is usually implemented by a connected player.
type Receiver interface {
	// Sends a plugin message to the channel with id.
	SendPluginMessage(id ChannelIdentifier, data []byte) error
}

// ReceiverFunc is a func implementing Receiver.
type ReceiverFunc func(id ChannelIdentifier, data []byte) error

func (f ReceiverFunc) SendPluginMessage(id ChannelIdentifier, data []byte) error {
	return f(id, data)
}

const DefaultNamespace = "minecraft"

var (
	ErrNamespaceEmpty   = errors.New("namespace cannot be empty")
	ErrNameEmpty        = errors.New("name cannot be empty")
	ErrNamespaceInvalid = fmt.Errorf("namespace does not match regex %s", ValidIdentifierRegex)
	ErrNameInvalid      = fmt.Errorf("name does not match regex %s", ValidIdentifierRegex)
)

var ValidIdentifierRegex = regexp.MustCompile(`^[a-z0-9/._\-]+$`)

// NewChannelIdentifier returns a new validated channel identifier.
// Namespace and name are normalized to lower case.
func NewChannelIdentifier(namespace, name string) (*MinecraftChannelIdentifier, error) {
	namespace = strings.ToLower(namespace)
	name = strings.ToLower(name)
	if len(namespace) == 0 {
		return nil, ErrNamespaceEmpty
	}
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if !ValidIdentifierRegex.MatchString(namespace) {
		return nil, ErrNamespaceInvalid
	}
	if !ValidIdentifierRegex.MatchString(name) {
		return nil, ErrNameInvalid
	}
	return newMinecraftChannelIdentifier(namespace, name), nil
}

// MustChannelIdentifier is like NewChannelIdentifier but panics on error.
func MustChannelIdentifier(namespace, name string) *MinecraftChannelIdentifier {
	id, err := NewChannelIdentifier(namespace, name)
	if err != nil {
		panic(fmt.Sprintf("invalid channel identifier %s:%s: %v", namespace, name, err))
	}
	return id
}

// ChannelIdentifierFrom parses a "namespace:name" channel identifier.
// An empty or missing namespace defaults to DefaultNamespace.
func ChannelIdentifierFrom(id string) (*MinecraftChannelIdentifier, error) {
	namespace, name, found := strings.Cut(id, ":")
	if !found {
		return NewChannelIdentifier(DefaultNamespace, id)
	}
	if strings.Contains(name, ":") {
		return nil, ErrNameInvalid
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return NewChannelIdentifier(namespace, name)
}

// Equal reports whether two channel identifiers refer to the same channel.
func Equal(a, b ChannelIdentifier) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}
