package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("b", "a")
	require.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.True(t, s.HasAll("a", "b"))
	assert.False(t, s.HasAll("a", "c"))

	s.Insert("a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))

	s.Delete("b", "unknown")
	assert.Equal(t, []string{"a", "c"}, Sorted(s))
}

func TestSetRetain(t *testing.T) {
	s := New(1, 2, 3, 4)
	removed := s.Retain(func(i int) bool { return i%2 == 0 })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{2, 4}, Sorted(s))
}

func TestSetClone(t *testing.T) {
	s := New("x")
	c := s.Clone()
	c.Insert("y")
	assert.False(t, s.Has("y"))
	assert.True(t, c.Has("x"))
}
