package message

import "go.minekube.com/common/minecraft/key"

// MinecraftChannelIdentifier is a Minecraft 1.13+ channel identifier.
type MinecraftChannelIdentifier struct {
	key.Key
}

func newMinecraftChannelIdentifier(namespace, name string) *MinecraftChannelIdentifier {
	return &MinecraftChannelIdentifier{Key: key.New(namespace, name)}
}

func (m *MinecraftChannelIdentifier) ID() string {
	return m.Namespace() + ":" + m.Value()
}

func (m *MinecraftChannelIdentifier) String() string {
	return m.ID()
}

var _ ChannelIdentifier = (*MinecraftChannelIdentifier)(nil)
