package veinminer

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"go.minekube.com/veinminer/pkg/util/sets"
)

// ItemType is a namespaced item type, e.g. minecraft:diamond_pickaxe.
// The empty ItemType is an empty hand.
type ItemType string

// CategoryConfig are the vein mining limits of a tool category.
type CategoryConfig struct {
	MaxVeinSize    int     // Maximum number of blocks mined at once.
	Cost           float64 // Economy cost of one vein mine.
	RepairFriendly bool    // Stop before a damageable tool breaks.
}

// ToolCategory groups item types sharing a block list and limits.
type ToolCategory struct {
	ID       string
	Priority int // Higher priority categories win shared items.
	Items    sets.Set[ItemType]
	Blocks   *BlockList
	Config   CategoryConfig
}

// HasItem reports whether item belongs to the category.
func (c *ToolCategory) HasItem(item ItemType) bool {
	return c.Items.Has(item)
}

func (c *ToolCategory) String() string { return c.ID }

// CategoryRegistry holds the registered tool categories.
type CategoryRegistry struct {
	mu         sync.RWMutex
	categories map[string]*ToolCategory
}

// NewCategoryRegistry returns an empty CategoryRegistry.
func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{categories: map[string]*ToolCategory{}}
}

// Register registers the categories. A category id can only be registered once.
func (r *CategoryRegistry) Register(categories ...*ToolCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range categories {
		if c == nil || c.ID == "" {
			return fmt.Errorf("tool category must have an id")
		}
		if _, ok := r.categories[c.ID]; ok {
			return fmt.Errorf("tool category %q already registered", c.ID)
		}
		if c.Items == nil {
			c.Items = sets.Set[ItemType]{}
		}
		if c.Blocks == nil {
			c.Blocks = &BlockList{}
		}
		r.categories[c.ID] = c
	}
	return nil
}

// Get returns the category with the id.
func (r *CategoryRegistry) Get(id string) (*ToolCategory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	return c, ok
}

// CategoryFor returns the highest priority category containing item.
// Ties are broken by category id.
func (r *CategoryRegistry) CategoryFor(item ItemType) (*ToolCategory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *ToolCategory
	for _, c := range r.categories {
		if !c.HasItem(item) {
			continue
		}
		if found == nil || c.Priority > found.Priority ||
			(c.Priority == found.Priority && c.ID < found.ID) {
			found = c
		}
	}
	return found, found != nil
}

// Len returns the number of registered categories.
func (r *CategoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.categories)
}

// All returns the registered categories sorted by id.
func (r *CategoryRegistry) All() []*ToolCategory {
	r.mu.RLock()
	all := make([]*ToolCategory, 0, len(r.categories))
	for _, c := range r.categories {
		all = append(all, c)
	}
	r.mu.RUnlock()
	slices.SortFunc(all, func(a, b *ToolCategory) int { return cmp.Compare(a.ID, b.ID) })
	return all
}

// IDs returns the registered category ids sorted.
func (r *CategoryRegistry) IDs() []string {
	all := r.All()
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	return ids
}
