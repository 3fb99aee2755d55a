// Package testutil provides fixture graphs and a brute-force reference
// enumerator for validating the canonical search.
package testutil

import (
	"fmt"
	"math/bits"
	"math/rand"
	"sort"
	"strings"

	"github.com/evz/greenland/enum"
	"github.com/evz/greenland/graph"
)

// PathGraph is the four-vertex path fixture A(10)-B(12)-C(8)-D(15).
// Under band [20,25] exactly {A,B}, {B,C} and {C,D} qualify.
func PathGraph() *graph.Graph {
	g := graph.New()
	g.AddVertex("A", 10)
	g.AddVertex("B", 12)
	g.AddVertex("C", 8)
	g.AddVertex("D", 15)
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "D")
	return g
}

// GridGraph builds a rows x cols grid with 4-neighbor adjacency.
// Vertex (r,c) is named "r<r>c<c>" and weighted by weight(r, c).
func GridGraph(rows, cols int, weight func(r, c int) int64) *graph.Graph {
	g := graph.New()
	name := func(r, c int) string { return fmt.Sprintf("r%dc%d", r, c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.AddVertex(name(r, c), weight(r, c))
			if r > 0 {
				g.AddEdge(name(r-1, c), name(r, c))
			}
			if c > 0 {
				g.AddEdge(name(r, c-1), name(r, c))
			}
		}
	}
	return g
}

// RandomConnectedGraph builds a deterministic pseudo-random connected
// graph of n vertices: a random spanning tree plus each remaining pair
// with probability p. Weights are uniform in [1, maxWeight].
func RandomConnectedGraph(seed int64, n int, p float64, maxWeight int64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := graph.New()
	name := func(i int) string { return fmt.Sprintf("v%02d", i) }
	for i := 0; i < n; i++ {
		g.AddVertex(name(i), 1+rng.Int63n(maxWeight))
	}
	for i := 1; i < n; i++ {
		g.AddEdge(name(rng.Intn(i)), name(i))
	}
	for i := 0; i < n; i++ {
		for k := i + 1; k < n; k++ {
			if rng.Float64() < p {
				g.AddEdge(name(i), name(k))
			}
		}
	}
	return g
}

// Combo is one reference combination: sorted member names and total
// weight.
type Combo struct {
	Members []string
	Sum     int64
}

// Key returns a canonical string identity for set comparisons.
func (c Combo) Key() string {
	return strings.Join(c.Members, ",")
}

// BruteForce enumerates all 2^n vertex subsets, filters for
// connectivity and band membership, and returns the survivors sorted
// by key. Exponential; only for small fixtures.
func BruteForce(enc *graph.Encoded, band enum.Band) []Combo {
	n := enc.Order()
	adj := make([]uint64, n)
	for i := 0; i < n; i++ {
		for v, ok := enc.Adj[i].NextSet(0); ok; v, ok = enc.Adj[i].NextSet(v + 1) {
			adj[i] |= 1 << v
		}
	}

	var out []Combo
	for mask := uint64(1); mask < 1<<n; mask++ {
		var sum int64
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += enc.Weights[i]
			}
		}
		if !band.Contains(sum) || !connected(adj, mask) {
			continue
		}
		var members []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				members = append(members, enc.Names[i])
			}
		}
		out = append(out, Combo{Members: members, Sum: sum})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// connected reports whether the induced subgraph on mask is connected,
// by flood fill from the lowest member.
func connected(adj []uint64, mask uint64) bool {
	start := mask & (^mask + 1)
	seen := start
	frontier := start
	for frontier != 0 {
		next := uint64(0)
		for f := frontier; f != 0; f &= f - 1 {
			i := bits.TrailingZeros64(f)
			next |= adj[i] & mask &^ seen
		}
		seen |= next
		frontier = next
	}
	return seen == mask
}
