package veinminer

import (
	"fmt"
	"sync"

	"github.com/edwingeng/deque/v2"
	"go.minekube.com/common/minecraft/key"
)

// BlockAccessor looks up block states in a world.
type BlockAccessor interface {
	// BlockState returns the state at pos, false if the position is not loaded.
	BlockState(pos Position) (BlockState, bool)
}

// BlockAccessorFunc is a func implementing BlockAccessor.
type BlockAccessorFunc func(pos Position) (BlockState, bool)

func (f BlockAccessorFunc) BlockState(pos Position) (BlockState, bool) { return f(pos) }

// Pattern expands a single broken block into the set of blocks to also break.
type Pattern interface {
	// Key returns the unique key of the pattern.
	Key() key.Key
	// AllocateBlocks returns the positions to vein mine, starting at origin.
	// The returned positions are unique and include origin.
	AllocateBlocks(accessor BlockAccessor, origin Position, block Block, config CategoryConfig) []Position
}

// DefaultPatternKey is the key of the default flood fill pattern.
var DefaultPatternKey = key.New("veinminer", "default")

// NewDefaultPattern returns the default pattern flooding over
// all BlockFaces to blocks matching the mined block definition.
func NewDefaultPattern() Pattern {
	return &floodPattern{key: DefaultPatternKey, faces: BlockFaces()}
}

// NewPattern returns a flood fill pattern with its own key only
// expanding over the given faces.
func NewPattern(k key.Key, faces ...BlockFace) Pattern {
	return &floodPattern{key: k, faces: faces}
}

type floodPattern struct {
	key   key.Key
	faces []BlockFace
}

func (p *floodPattern) Key() key.Key { return p.key }

func (p *floodPattern) AllocateBlocks(accessor BlockAccessor, origin Position, block Block, config CategoryConfig) []Position {
	limit := config.MaxVeinSize
	if limit <= 0 {
		return nil
	}
	visited := map[Position]struct{}{origin: {}}
	result := []Position{origin}
	queue := deque.NewDeque[Position]()
	queue.PushBack(origin)
	for queue.Len() != 0 && len(result) < limit {
		current := queue.PopFront()
		for _, face := range p.faces {
			next := current.Relative(face)
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			state, ok := accessor.BlockState(next)
			if !ok || !block.Matches(state) {
				continue
			}
			result = append(result, next)
			if len(result) >= limit {
				break
			}
			queue.PushBack(next)
		}
	}
	return result
}

// PatternRegistry holds the registered vein mining patterns.
type PatternRegistry struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
	order    []string
}

// NewPatternRegistry returns a PatternRegistry with the patterns registered.
func NewPatternRegistry(patterns ...Pattern) (*PatternRegistry, error) {
	r := &PatternRegistry{patterns: map[string]Pattern{}}
	for _, p := range patterns {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register registers the pattern by its key.
func (r *PatternRegistry) Register(p Pattern) error {
	k := KeyString(p.Key())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patterns[k]; ok {
		return fmt.Errorf("pattern %s already registered", k)
	}
	r.patterns[k] = p
	r.order = append(r.order, k)
	return nil
}

// Get returns the pattern registered under the key.
// The key is parsed like ParseKey, so "default" finds "minecraft:default".
func (r *PatternRegistry) Get(k string) (Pattern, bool) {
	r.mu.RLock()
	p, ok := r.patterns[k]
	r.mu.RUnlock()
	if ok {
		return p, true
	}
	normalized, err := normalizeKey(k)
	if err != nil || normalized == k {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok = r.patterns[normalized]
	return p, ok
}

// Keys returns the pattern keys in registration order.
func (r *PatternRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered patterns.
func (r *PatternRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
