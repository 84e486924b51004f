package configutil

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestPrefixed(t *testing.T) {
	v := viper.New()
	Prefixed(Prefixed(v, "a."), "b.").SetDefault("c", 1)
	assert.Equal(t, 1, v.GetInt("a.b.c"))
	assert.True(t, v.IsSet("a.b.c"))
}

func TestNilSetDefaultFunc(t *testing.T) {
	var f SetDefaultFunc
	assert.NotPanics(t, func() { f.SetDefault("a", 1) })
}
