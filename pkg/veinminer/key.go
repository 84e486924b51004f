package veinminer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.minekube.com/common/minecraft/key"
)

var validKeyPart = regexp.MustCompile(`^[a-z0-9/._\-]+$`)

// ParseKey parses a namespaced key, lower-cased and defaulting to
// the minecraft namespace when none is given.
func ParseKey(s string) (key.Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	namespace, value, found := strings.Cut(s, ":")
	if !found {
		namespace, value = key.MinecraftNamespace, s
	} else if namespace == "" {
		namespace = key.MinecraftNamespace
	}
	if value == "" {
		return nil, errors.New("key value cannot be empty")
	}
	if !validKeyPart.MatchString(namespace) {
		return nil, fmt.Errorf("invalid key namespace %q", namespace)
	}
	if !validKeyPart.MatchString(value) {
		return nil, fmt.Errorf("invalid key value %q", value)
	}
	return key.New(namespace, value), nil
}

// KeyString returns the "namespace:value" form of k.
func KeyString(k key.Key) string {
	if k == nil {
		return ""
	}
	return k.Namespace() + ":" + k.Value()
}

// normalizeKey returns the KeyString of the parsed s.
func normalizeKey(s string) (string, error) {
	k, err := ParseKey(s)
	if err != nil {
		return "", err
	}
	return KeyString(k), nil
}
