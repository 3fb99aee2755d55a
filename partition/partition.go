// Package partition assigns enumeration roots to workers.
//
// Roots are dealt round-robin. Higher-indexed roots search smaller
// universes and are therefore cheaper, so interleaving balances the
// load better than contiguous ranges would. Correctness does not
// depend on the assignment at all: every root's search is confined to
// vertices at or above it, so any disjoint grouping yields disjoint
// result streams.
package partition

// Roots distributes root indices 0..n-1 across the given number of
// workers, root i going to worker i mod workers. Groups are disjoint
// and their union covers every root; workers beyond n receive empty
// groups.
func Roots(n, workers int) [][]int {
	if workers < 1 {
		workers = 1
	}
	groups := make([][]int, workers)
	for r := 0; r < n; r++ {
		w := r % workers
		groups[w] = append(groups[w], r)
	}
	return groups
}
