package veinminer

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// BlockState is a namespaced block type with its state properties.
type BlockState struct {
	Type       string // e.g. minecraft:oak_log
	Properties map[string]string
}

// ParseBlockState parses "namespace:type[key=value,...]".
func ParseBlockState(s string) (BlockState, error) {
	s = strings.TrimSpace(s)
	typ, props, hasProps := strings.Cut(s, "[")
	t, err := normalizeKey(typ)
	if err != nil {
		return BlockState{}, fmt.Errorf("invalid block type in %q: %w", s, err)
	}
	state := BlockState{Type: t}
	if !hasProps {
		return state, nil
	}
	props, ok := strings.CutSuffix(props, "]")
	if !ok {
		return BlockState{}, fmt.Errorf("missing closing bracket in %q", s)
	}
	if strings.TrimSpace(props) == "" {
		return state, nil
	}
	state.Properties = map[string]string{}
	for _, kv := range strings.Split(props, ",") {
		k, v, ok := strings.Cut(kv, "=")
		k, v = strings.TrimSpace(strings.ToLower(k)), strings.TrimSpace(strings.ToLower(v))
		if !ok || k == "" || v == "" {
			return BlockState{}, fmt.Errorf("invalid block property %q in %q", kv, s)
		}
		state.Properties[k] = v
	}
	return state, nil
}

// MustBlockState is like ParseBlockState but panics on error.
func MustBlockState(s string) BlockState {
	state, err := ParseBlockState(s)
	if err != nil {
		panic(err)
	}
	return state
}

func (s BlockState) String() string {
	if len(s.Properties) == 0 {
		return s.Type
	}
	keys := slices.Sorted(maps.Keys(s.Properties))
	b := new(strings.Builder)
	b.WriteString(s.Type)
	b.WriteByte('[')
	for i, k := range keys {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Properties[k])
	}
	b.WriteByte(']')
	return b.String()
}

// Wildcard is the block definition string matching every block.
const Wildcard = "*"

// Block is a vein mineable block definition. It matches block
// states of its type having at least its properties set.
type Block struct {
	State    BlockState
	wildcard bool
}

// ParseBlock parses a block definition, either Wildcard or a block state string.
func ParseBlock(s string) (Block, error) {
	if strings.TrimSpace(s) == Wildcard {
		return Block{wildcard: true}, nil
	}
	state, err := ParseBlockState(s)
	if err != nil {
		return Block{}, err
	}
	return Block{State: state}, nil
}

// IsWildcard reports whether the block matches every block state.
func (b Block) IsWildcard() bool { return b.wildcard }

// Matches reports whether state is matched by the block definition.
func (b Block) Matches(state BlockState) bool {
	if b.wildcard {
		return true
	}
	if b.State.Type != state.Type {
		return false
	}
	for k, v := range b.State.Properties {
		if state.Properties[k] != v {
			return false
		}
	}
	return true
}

// MatchesType reports whether the block matches any state of the block type.
func (b Block) MatchesType(blockType string) bool {
	return b.wildcard || b.State.Type == blockType
}

func (b Block) String() string {
	if b.wildcard {
		return Wildcard
	}
	return b.State.String()
}

// BlockList is an ordered, duplicate free list of block definitions.
// The zero value is an empty list ready to use.
type BlockList struct {
	blocks []Block
	index  map[string]int
}

// NewBlockList returns a BlockList of the blocks.
func NewBlockList(blocks ...Block) *BlockList {
	l := &BlockList{}
	l.Add(blocks...)
	return l
}

// ParseBlockList parses the block definitions. Invalid
// definitions are skipped and returned as errors.
func ParseBlockList(defs []string) (*BlockList, []error) {
	l := &BlockList{}
	var errs []error
	for _, def := range defs {
		b, err := ParseBlock(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.Add(b)
	}
	return l, errs
}

// Add adds the blocks not already contained.
func (l *BlockList) Add(blocks ...Block) {
	if l.index == nil {
		l.index = map[string]int{}
	}
	for _, b := range blocks {
		s := b.String()
		if _, ok := l.index[s]; ok {
			continue
		}
		l.index[s] = len(l.blocks)
		l.blocks = append(l.blocks, b)
	}
}

// AddAll adds all blocks of other.
func (l *BlockList) AddAll(other *BlockList) {
	if other != nil {
		l.Add(other.blocks...)
	}
}

// Match returns the first block definition matching state.
func (l *BlockList) Match(state BlockState) (Block, bool) {
	if l == nil {
		return Block{}, false
	}
	for _, b := range l.blocks {
		if b.Matches(state) {
			return b, true
		}
	}
	return Block{}, false
}

// ContainsState reports whether any definition matches state.
func (l *BlockList) ContainsState(state BlockState) bool {
	_, ok := l.Match(state)
	return ok
}

// ContainsType reports whether any definition matches the block type.
func (l *BlockList) ContainsType(blockType string) bool {
	if l == nil {
		return false
	}
	for _, b := range l.blocks {
		if b.MatchesType(blockType) {
			return true
		}
	}
	return false
}

// Blocks returns the definitions in insertion order.
func (l *BlockList) Blocks() []Block {
	if l == nil {
		return nil
	}
	return slices.Clone(l.blocks)
}

// Strings returns the definitions as strings in insertion order.
func (l *BlockList) Strings() []string {
	if l == nil {
		return nil
	}
	s := make([]string, len(l.blocks))
	for i, b := range l.blocks {
		s[i] = b.String()
	}
	return s
}

// Len returns the number of definitions.
func (l *BlockList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.blocks)
}

// Clone returns a copy of l.
func (l *BlockList) Clone() *BlockList {
	return NewBlockList(l.Blocks()...)
}
