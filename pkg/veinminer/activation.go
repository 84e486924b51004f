package veinminer

import (
	"fmt"
	"strings"
)

// ActivationStrategy determines when vein mining is armed for a player.
type ActivationStrategy uint8

const (
	ActivationAlways ActivationStrategy = iota // Vein mining is always active.
	ActivationClient                           // Active while the client activation key is pressed.
	ActivationSneak                            // Active while the player is sneaking.
	ActivationStand                            // Active while the player is not sneaking.
)

var activationStrategyNames = [...]string{
	ActivationAlways: "always",
	ActivationClient: "client",
	ActivationSneak:  "sneak",
	ActivationStand:  "stand",
}

// ActivationStrategies returns all known activation strategies.
func ActivationStrategies() []ActivationStrategy {
	return []ActivationStrategy{ActivationAlways, ActivationClient, ActivationSneak, ActivationStand}
}

// Valid reports whether s is a known strategy.
func (s ActivationStrategy) Valid() bool {
	return int(s) < len(activationStrategyNames)
}

func (s ActivationStrategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
	return activationStrategyNames[s]
}

// ParseActivationStrategy parses a case-insensitive strategy name.
func ParseActivationStrategy(s string) (ActivationStrategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range activationStrategyNames {
		if name == s {
			return ActivationStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown activation strategy %q", s)
}

func (s ActivationStrategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown activation strategy %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *ActivationStrategy) UnmarshalText(text []byte) error {
	v, err := ParseActivationStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
