package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/veinminer/pkg/veinminer"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sneak", cfg.DefaultActivationStrategy)
	assert.Equal(t, "veinminer:default", cfg.DefaultVeinMiningPattern)
	assert.True(t, cfg.Client.AllowActivation)
	assert.Len(t, cfg.Client.DisallowedMessage, 2)
	assert.Equal(t, []string{"axe", "pickaxe", "shovel"}, cfg.CategoryIDs())
	assert.Equal(t, 64, cfg.Categories["pickaxe"].MaxVeinSize)
	assert.Equal(t, "playerdata", cfg.Storage.Directory)

	warns, errs := cfg.Validate("veinminer:default")
	assert.Empty(t, warns)
	assert.Empty(t, errs)
}

func writeConfig(t *testing.T, content string) *viper.Viper {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	v := viper.New()
	v.SetConfigFile(file)
	return v
}

func TestLoad(t *testing.T) {
	v := writeConfig(t, `
defaultActivationStrategy: always
client:
  allowActivation: false
categories:
  hoe:
    priority: 2
    maxVeinSize: 8
    cost: 1.5
    items: [minecraft:iron_hoe]
    blocks: ["minecraft:wheat[age=7]"]
`)
	cfg, err := Load(v)
	require.NoError(t, err)

	s, err := cfg.ActivationStrategy()
	require.NoError(t, err)
	assert.Equal(t, veinminer.ActivationAlways, s)
	assert.Equal(t, "veinminer:default", cfg.DefaultVeinMiningPattern, "default applies")
	assert.False(t, cfg.Client.AllowActivation)
	assert.Len(t, cfg.Client.DisallowedMessage, 2, "default applies")
	assert.Equal(t, []string{"hoe"}, cfg.CategoryIDs(), "defined categories replace the defaults")

	hoe := cfg.Categories["hoe"]
	assert.Equal(t, 2, hoe.Priority)
	assert.Equal(t, 8, hoe.MaxVeinSize)
	assert.Equal(t, 1.5, hoe.Cost)
	assert.Equal(t, []string{"minecraft:iron_hoe"}, hoe.Items)
}

func TestLoadWithoutCategories(t *testing.T) {
	cfg, err := Load(writeConfig(t, "defaultActivationStrategy: stand\n"))
	require.NoError(t, err)
	assert.Equal(t, "stand", cfg.DefaultActivationStrategy)
	assert.Equal(t, []string{"axe", "pickaxe", "shovel"}, cfg.CategoryIDs())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, Default().DefaultActivationStrategy, cfg.DefaultActivationStrategy)
	assert.Len(t, cfg.Categories, 3)
}

func TestLoadMissingFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	_, err := Load(v)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errs   int
		warns  int
	}{
		{name: "default", modify: func(*Config) {}},
		{name: "strategy", modify: func(c *Config) { c.DefaultActivationStrategy = "snek" }, errs: 1},
		{name: "pattern key", modify: func(c *Config) { c.DefaultVeinMiningPattern = "a:b:c" }, errs: 1},
		{name: "unknown pattern", modify: func(c *Config) { c.DefaultVeinMiningPattern = "veinminer:other" }, errs: 1},
		{name: "disallowed without message", modify: func(c *Config) {
			c.Client.AllowActivation = false
			c.Client.DisallowedMessage = nil
		}, warns: 1},
		{name: "global block list", modify: func(c *Config) { c.GlobalBlockList = []string{"minecraft:stone[axis"} }, errs: 1},
		{name: "no categories", modify: func(c *Config) { c.Categories = nil }, warns: 1},
		{name: "category", modify: func(c *Config) {
			c.Categories["Bad Id"] = Category{MaxVeinSize: 0, Cost: -1, Items: []string{"x:y:z"}, Blocks: []string{"minecraft:stone"}}
		}, errs: 4},
		{name: "shared item", modify: func(c *Config) {
			c.Categories["mattock"] = Category{MaxVeinSize: 1, Items: []string{"minecraft:iron_axe"}, Blocks: []string{"minecraft:dirt"}}
		}, warns: 1},
		{name: "shared item with higher priority", modify: func(c *Config) {
			c.Categories["mattock"] = Category{Priority: 1, MaxVeinSize: 1, Items: []string{"minecraft:iron_axe"}, Blocks: []string{"minecraft:dirt"}}
		}},
		{name: "storage", modify: func(c *Config) { c.Storage.Directory = "" }, errs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			warns, errs := cfg.Validate("veinminer:default")
			assert.Len(t, errs, tt.errs, "errs: %v", errs)
			assert.Len(t, warns, tt.warns, "warns: %v", warns)
		})
	}
}

func TestValidateDidYouMean(t *testing.T) {
	cfg := Default()
	cfg.DefaultActivationStrategy = "snaek"
	_, errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `did you mean "sneak"?`)
}

func TestVeinMiner(t *testing.T) {
	cfg := Default()
	cfg.GlobalBlockList = []string{"minecraft:glowstone"}
	cfg.Categories["axe"] = Category{
		MaxVeinSize: 32,
		Items:       []string{"IRON_AXE", "bad:item:key"},
		Blocks:      []string{"minecraft:oak_log[axis=y]", "minecraft:oak_leaves[bad"},
	}

	patterns, err := veinminer.NewPatternRegistry(veinminer.NewDefaultPattern())
	require.NoError(t, err)
	vm, errs := cfg.VeinMiner(patterns)
	assert.Len(t, errs, 2)
	assert.Same(t, patterns, vm.Patterns)
	assert.Equal(t, 3, vm.Categories.Len())

	axe, ok := vm.Categories.CategoryFor("minecraft:iron_axe")
	require.True(t, ok)
	assert.Equal(t, "axe", axe.ID)
	assert.Equal(t, 32, axe.Config.MaxVeinSize)

	_, ok = vm.Block(veinminer.MustBlockState("minecraft:oak_log[axis=y]"), axe)
	assert.True(t, ok)
	_, ok = vm.Block(veinminer.MustBlockState("minecraft:oak_log[axis=x]"), axe)
	assert.False(t, ok)
	_, ok = vm.Block(veinminer.MustBlockState("minecraft:glowstone"), axe)
	assert.True(t, ok, "global block list applies to every category")
}
