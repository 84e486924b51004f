package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	for name, want := range map[string]bool{
		"pickaxe":               true,
		"hand_tools":            true,
		"a":                     true,
		"":                      false,
		"_axe":                  false,
		"Axe":                   false,
		"pick axe":              false,
		strings.Repeat("a", 64): false,
	} {
		assert.Equal(t, want, ValidName(name), name)
	}
}
