// Package config defines the VeinMiner configuration loaded with viper.
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go.minekube.com/veinminer/pkg/command/suggest"
	"go.minekube.com/veinminer/pkg/configs"
	"go.minekube.com/veinminer/pkg/util/configutil"
	"go.minekube.com/veinminer/pkg/util/sets"
	"go.minekube.com/veinminer/pkg/util/validation"
	"go.minekube.com/veinminer/pkg/veinminer"
)

// Config is the configuration of VeinMiner.
type Config struct {
	DefaultActivationStrategy string              `yaml:"defaultActivationStrategy"`
	DefaultVeinMiningPattern  string              `yaml:"defaultVeinMiningPattern"`
	Client                    Client              `yaml:"client"`
	GlobalBlockList           []string            `yaml:"globalBlockList"`
	Categories                map[string]Category `yaml:"categories"`
	Storage                   Storage             `yaml:"storage"`
}

type (
	// Client configures players using the client-side mod.
	Client struct {
		AllowActivation   bool     `yaml:"allowActivation"`
		DisallowedMessage []string `yaml:"disallowedMessage"` // '&' formatted lines
	}
	// Category is a tool category.
	Category struct {
		Priority       int      `yaml:"priority"`
		MaxVeinSize    int      `yaml:"maxVeinSize"`
		Cost           float64  `yaml:"cost"`
		RepairFriendly bool     `yaml:"repairFriendly"`
		Items          []string `yaml:"items"`
		Blocks         []string `yaml:"blocks"`
	}
	// Storage configures where player preferences are stored.
	Storage struct {
		Directory string `yaml:"directory"`
	}
)

// Default returns the default config parsed from the embedded config.yml.
func Default() *Config {
	cfg := new(Config)
	if err := yaml.Unmarshal(configs.DefaultConfigBytes, cfg); err != nil {
		panic(fmt.Sprintf("invalid embedded default config: %v", err))
	}
	return cfg
}

// SetDefaults sets Config defaults used with Viper.
func SetDefaults(i configutil.SetDefault) {
	d := Default()
	i.SetDefault("defaultActivationStrategy", d.DefaultActivationStrategy)
	i.SetDefault("defaultVeinMiningPattern", d.DefaultVeinMiningPattern)
	client := configutil.Prefixed(i, "client.")
	client.SetDefault("allowActivation", d.Client.AllowActivation)
	client.SetDefault("disallowedMessage", d.Client.DisallowedMessage)
	i.SetDefault("globalBlockList", d.GlobalBlockList)
	i.SetDefault("storage.directory", d.Storage.Directory)
}

// Load reads the config file set on v, if any, and returns the config
// with defaults applied. Categories default to the embedded ones only
// if the config does not define the categories key.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %q: %w", v.ConfigFileUsed(), err)
		}
	}
	// Always decode into a fresh config so removed categories do not survive a reload.
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if !v.IsSet("categories") {
		cfg.Categories = Default().Categories
	}
	return cfg, nil
}

// ActivationStrategy returns the parsed default activation strategy.
func (c *Config) ActivationStrategy() (veinminer.ActivationStrategy, error) {
	return veinminer.ParseActivationStrategy(c.DefaultActivationStrategy)
}

// CategoryIDs returns the configured category ids sorted.
func (c *Config) CategoryIDs() []string {
	return slices.Sorted(maps.Keys(c.Categories))
}

// VeinMiner builds the vein mining definitions with the given patterns.
// Invalid block and item definitions are skipped and returned as errors.
func (c *Config) VeinMiner(patterns *veinminer.PatternRegistry) (*veinminer.VeinMiner, []error) {
	global, errs := veinminer.ParseBlockList(c.GlobalBlockList)
	categories := veinminer.NewCategoryRegistry()
	for _, id := range c.CategoryIDs() {
		cat := c.Categories[id]
		blocks, blockErrs := veinminer.ParseBlockList(cat.Blocks)
		for _, err := range blockErrs {
			errs = append(errs, fmt.Errorf("category %q: %w", id, err))
		}
		items := sets.Set[veinminer.ItemType]{}
		for _, item := range cat.Items {
			k, err := veinminer.ParseKey(item)
			if err != nil {
				errs = append(errs, fmt.Errorf("category %q: invalid item %q: %w", id, item, err))
				continue
			}
			items.Insert(veinminer.ItemType(veinminer.KeyString(k)))
		}
		err := categories.Register(&veinminer.ToolCategory{
			ID:       id,
			Priority: cat.Priority,
			Items:    items,
			Blocks:   blocks,
			Config: veinminer.CategoryConfig{
				MaxVeinSize:    cat.MaxVeinSize,
				Cost:           cat.Cost,
				RepairFriendly: cat.RepairFriendly,
			},
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return &veinminer.VeinMiner{
		GlobalBlockList: global,
		Categories:      categories,
		Patterns:        patterns,
	}, errs
}

// similarityThreshold is the minimum similarity for "did you mean" hints.
const similarityThreshold = 0.5

// Validate validates Config against the known pattern keys.
// No pattern validation is done if patterns is empty.
func (c *Config) Validate(patterns ...string) (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...any) { warns = append(warns, fmt.Errorf(m, args...)) }

	if c == nil {
		e("config must not be nil")
		return
	}

	if _, err := c.ActivationStrategy(); err != nil {
		names := make([]string, 0, 4)
		for _, s := range veinminer.ActivationStrategies() {
			names = append(names, s.String())
		}
		e("Invalid defaultActivationStrategy %q, must be one of %v%s",
			c.DefaultActivationStrategy, names, didYouMean(c.DefaultActivationStrategy, names))
	}

	if k, err := veinminer.ParseKey(c.DefaultVeinMiningPattern); err != nil {
		e("Invalid defaultVeinMiningPattern %q: %v", c.DefaultVeinMiningPattern, err)
	} else if len(patterns) != 0 && !slices.Contains(patterns, veinminer.KeyString(k)) {
		e("Unknown defaultVeinMiningPattern %q%s", c.DefaultVeinMiningPattern,
			didYouMean(c.DefaultVeinMiningPattern, patterns))
	}

	if !c.Client.AllowActivation && len(c.Client.DisallowedMessage) == 0 {
		w("Client activation is disallowed but client.disallowedMessage is empty, " +
			"players with the client-side mod will not be notified.")
	}

	if _, blockErrs := veinminer.ParseBlockList(c.GlobalBlockList); len(blockErrs) != 0 {
		for _, err := range blockErrs {
			e("Invalid globalBlockList entry: %v", err)
		}
	}

	if len(c.Categories) == 0 {
		w("No tool categories configured, vein mining is not possible.")
	}

	itemOwners := map[string][]string{} // item:category ids
	for _, id := range c.CategoryIDs() {
		cat := c.Categories[id]
		if !validation.ValidName(id) {
			e("Invalid category id %q: %s and length be 1-%d", id,
				validation.QualifiedNameErrMsg, validation.QualifiedNameMaxLength)
		}
		if cat.MaxVeinSize <= 0 {
			e("Category %q maxVeinSize must be positive, got %d", id, cat.MaxVeinSize)
		}
		if cat.Cost < 0 {
			e("Category %q cost must not be negative, got %v", id, cat.Cost)
		}
		if len(cat.Items) == 0 {
			w("Category %q has no items and is never used.", id)
		}
		for _, item := range cat.Items {
			k, err := veinminer.ParseKey(item)
			if err != nil {
				e("Category %q has invalid item %q: %v", id, item, err)
				continue
			}
			itemOwners[veinminer.KeyString(k)] = append(itemOwners[veinminer.KeyString(k)], id)
		}
		_, blockErrs := veinminer.ParseBlockList(cat.Blocks)
		for _, err := range blockErrs {
			e("Category %q has invalid block: %v", id, err)
		}
		if len(cat.Blocks) == 0 && len(c.GlobalBlockList) == 0 {
			w("Category %q has no blocks and the global block list is empty.", id)
		}
	}
	for _, item := range slices.Sorted(maps.Keys(itemOwners)) {
		owners := itemOwners[item]
		for i := 1; i < len(owners); i++ {
			if c.Categories[owners[i]].Priority == c.Categories[owners[0]].Priority {
				w("Item %q is in categories %q and %q of equal priority, %q is used.",
					item, owners[0], owners[i], owners[0])
			}
		}
	}

	if c.Storage.Directory == "" {
		e("storage.directory must not be empty")
	}
	return
}

func didYouMean(given string, candidates []string) string {
	if s, ok := suggest.Closest(given, candidates, similarityThreshold); ok {
		return fmt.Sprintf(", did you mean %q?", s)
	}
	return ""
}
