// Package componentutil converts configured chat strings into text components.
package componentutil

import (
	"errors"
	"strings"

	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec"
	"go.minekube.com/common/minecraft/component/codec/legacy"
)

var (
	// LegacyCodec is the codec for '&' formatted strings.
	LegacyCodec = &legacy.Legacy{Char: legacy.AmpersandChar}
	// JsonCodec is the codec for JSON text components.
	JsonCodec = &codec.Json{
		NoDownsampleColor: true,
		NoLegacyHover:     true,
	}
)

// ParseTextComponent parses a JSON text component if s starts with '{'
// or else a '&' formatted legacy string.
func ParseTextComponent(s string) (t *component.Text, err error) {
	var c component.Component
	if strings.HasPrefix(s, "{") {
		c, err = JsonCodec.Unmarshal([]byte(s))
	} else {
		c, err = LegacyCodec.Unmarshal([]byte(s))
	}
	if err != nil {
		return nil, err
	}
	t, ok := c.(*component.Text)
	if !ok {
		return nil, errors.New("invalid text component")
	}
	return t, nil
}

// Text is like ParseTextComponent but falls back to s as plain text.
func Text(s string) component.Component {
	t, err := ParseTextComponent(s)
	if err != nil {
		return &component.Text{Content: s}
	}
	return t
}

// Legacy returns c as '&' formatted legacy string.
func Legacy(c component.Component) string {
	b := new(strings.Builder)
	if err := LegacyCodec.Marshal(b, c); err != nil {
		return ""
	}
	return b.String()
}
