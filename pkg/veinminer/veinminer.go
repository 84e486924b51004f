// Package veinminer defines the vein mining domain: activation strategies,
// block definitions and lists, tool categories and vein mining patterns.
package veinminer

// VeinMiner holds the vein mining definitions shared by all player sessions.
// It is replaced as a whole on configuration reload.
type VeinMiner struct {
	GlobalBlockList *BlockList // Blocks vein mineable by every category.
	Categories      *CategoryRegistry
	Patterns        *PatternRegistry
}

// Block returns the block definition matching state for the category.
// The global block list is consulted before the category's list.
func (v *VeinMiner) Block(state BlockState, category *ToolCategory) (Block, bool) {
	if b, ok := v.GlobalBlockList.Match(state); ok {
		return b, true
	}
	if category == nil {
		return Block{}, false
	}
	return category.Blocks.Match(state)
}

// IsVeinMineable reports whether state is vein mineable by any category.
func (v *VeinMiner) IsVeinMineable(state BlockState) bool {
	if v.GlobalBlockList.ContainsState(state) {
		return true
	}
	for _, c := range v.Categories.All() {
		if c.Blocks.ContainsState(state) {
			return true
		}
	}
	return false
}

// AllVeinMineableBlocks returns the global block list merged with all category lists.
func (v *VeinMiner) AllVeinMineableBlocks() *BlockList {
	l := v.GlobalBlockList.Clone()
	for _, c := range v.Categories.All() {
		l.AddAll(c.Blocks)
	}
	return l
}
