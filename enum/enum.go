// Package enum implements canonical enumeration of connected vertex
// subsets under a weight band.
//
// For a root vertex r the enumerator walks every connected subset S
// with min(S) = r whose total weight lies inside the band, emitting
// each such subset exactly once. Uniqueness comes from the classical
// candidate/exclusion discipline: a vertex tried as an extension at a
// search node is excluded from every later sibling subtree, so each
// subset has exactly one derivation order. Because roots only ever see
// the universe of vertices with index >= r, searches for distinct roots
// are disjoint and can run in parallel with no coordination.
package enum

import (
	"context"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/evz/greenland/graph"
)

// ctxCheckInterval is how many popped frames go by between context
// cancellation checks. The search itself never blocks.
const ctxCheckInterval = 4096

// Band is the inclusive weight interval a qualifying subset's total
// must fall within. Lo > Hi is a legal degenerate band that matches
// nothing.
type Band struct {
	Lo int64
	Hi int64
}

// Contains reports whether sum lies inside the band.
func (b Band) Contains(sum int64) bool {
	return b.Lo <= sum && sum <= b.Hi
}

// Subset is one enumerated connected subset. Members is ascending by
// vertex index; callers may retain it but must not mutate it.
type Subset struct {
	Members *bitset.BitSet
	Sum     int64
}

// Stats counts work done by an Enumerator since creation.
type Stats struct {
	// Frames is the number of search states popped from the stack.
	Frames int64
	// Emitted is the number of subsets handed to visitors.
	Emitted int64
}

// Enumerator walks connected subsets of one encoded graph. It keeps
// private mutable state (the search stack) and is therefore not safe
// for concurrent use; give each worker its own Enumerator over the
// shared Encoded graph.
type Enumerator struct {
	enc   *graph.Encoded
	band  Band
	stats Stats
}

// New creates an Enumerator over the encoded graph and band.
func New(enc *graph.Encoded, band Band) *Enumerator {
	return &Enumerator{enc: enc, band: band}
}

// Stats returns a snapshot of the work counters.
func (e *Enumerator) Stats() Stats {
	return e.stats
}

// frame is one node of the search. s is the current subset, c the
// candidate extensions, x the exclusions inherited from earlier
// siblings, sum the subset's total weight. Each frame owns its bitsets.
type frame struct {
	s   *bitset.BitSet
	c   *bitset.BitSet
	x   *bitset.BitSet
	sum int64
}

// Root emits every connected subset S with min(S) = root whose weight
// is inside the band, in deterministic depth-first order with
// candidates taken in ascending index order. A visitor error aborts
// the walk and is returned as-is.
//
// The walk uses an explicit heap-allocated stack; depth is bounded by
// the vertex count, never by the goroutine call stack.
func (e *Enumerator) Root(ctx context.Context, root int, visit func(Subset) error) error {
	n := e.enc.Order()
	if root < 0 || root >= n {
		return fmt.Errorf("enum: root %d out of range [0, %d)", root, n)
	}

	// Universe for this root: vertices with index >= root. Searching
	// only upward keeps root = min(S) for every emitted subset.
	universe := e.enc.Full.Clone()
	for i := 0; i < root; i++ {
		universe.Clear(uint(i))
	}

	s := bitset.New(uint(n))
	s.Set(uint(root))
	c := e.enc.Adj[root].Intersection(universe)
	c.Clear(uint(root))

	stack := []frame{{
		s:   s,
		c:   c,
		x:   bitset.New(uint(n)),
		sum: e.enc.Weights[root],
	}}

	var children []frame
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e.stats.Frames++
		if e.stats.Frames%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if e.band.Contains(f.sum) {
			e.stats.Emitted++
			if err := visit(Subset{Members: f.s, Sum: f.sum}); err != nil {
				return err
			}
		}

		// Weights are non-negative, so extending never decreases the
		// sum; once at or above the upper bound the subtree is dead.
		if f.sum >= e.band.Hi || f.c.None() {
			continue
		}

		// f.c and f.x are owned by this frame and are consumed here:
		// f.c shrinks as candidates are processed, f.x grows so later
		// siblings cannot rebuild subsets reachable through earlier
		// ones. Children snapshot both.
		children = children[:0]
		for v, ok := f.c.NextSet(0); ok; v, ok = f.c.NextSet(v + 1) {
			f.c.Clear(v)
			newSum := f.sum + e.enc.Weights[v]
			if newSum <= e.band.Hi {
				ns := f.s.Clone()
				ns.Set(v)
				nc := f.c.Clone()
				nc.InPlaceUnion(e.enc.Adj[v])
				nc.InPlaceIntersection(universe)
				nc.InPlaceDifference(ns)
				nc.InPlaceDifference(f.x)
				children = append(children, frame{s: ns, c: nc, x: f.x.Clone(), sum: newSum})
			}
			f.x.Set(v)
		}

		// Reversed so the lowest-index candidate is popped first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return nil
}

// Roots runs Root for each root in order. Emission order is the
// concatenation of the per-root depth-first orders.
func (e *Enumerator) Roots(ctx context.Context, roots []int, visit func(Subset) error) error {
	for _, r := range roots {
		if err := e.Root(ctx, r, visit); err != nil {
			return err
		}
	}
	return nil
}
