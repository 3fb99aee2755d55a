package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evz/greenland/partition"
)

func TestRoots_RoundRobin(t *testing.T) {
	groups := partition.Roots(7, 3)
	require.Len(t, groups, 3)
	assert.Equal(t, []int{0, 3, 6}, groups[0])
	assert.Equal(t, []int{1, 4}, groups[1])
	assert.Equal(t, []int{2, 5}, groups[2])
}

func TestRoots_DisjointAndComplete(t *testing.T) {
	for _, workers := range []int{1, 2, 5, 48, 100} {
		groups := partition.Roots(48, workers)
		require.Len(t, groups, workers)

		seen := make(map[int]bool)
		for _, g := range groups {
			for _, r := range g {
				assert.False(t, seen[r], "root %d assigned twice", r)
				seen[r] = true
			}
		}
		assert.Len(t, seen, 48)
	}
}

func TestRoots_MoreWorkersThanRoots(t *testing.T) {
	groups := partition.Roots(2, 4)
	require.Len(t, groups, 4)
	assert.Equal(t, []int{0}, groups[0])
	assert.Equal(t, []int{1}, groups[1])
	assert.Empty(t, groups[2])
	assert.Empty(t, groups[3])
}

func TestRoots_ZeroWorkersClamped(t *testing.T) {
	groups := partition.Roots(3, 0)
	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1, 2}, groups[0])
}
