package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	candidates := []string{"always", "client", "sneak", "stand"}

	got, ok := Closest("snaek", candidates, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "sneak", got)

	got, ok = Closest("clinet", candidates, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "client", got)

	_, ok = Closest("xyzxyzxyz", candidates, 0.5)
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 1.0, Score("sta", "stand"))
	assert.Less(t, Score("xyz", "stand"), DefaultMinimumSimilarityScore)
}
