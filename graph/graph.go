// Package graph holds the named weighted graph and its dense encoding.
//
// Callers build a Graph out of named vertices and undirected edges, then
// call Encode to obtain the index-based form the enumerator operates on:
// a stable name-sorted vertex ordering, an indexed weight array, one
// adjacency bit-vector per vertex and the all-ones mask over the index
// range. The encoded form is immutable.
package graph

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Graph is a mutable builder for a vertex-weighted undirected graph.
// It is not safe for concurrent use; encode it once and share the
// resulting Encoded value instead.
type Graph struct {
	weights map[string]int64
	edges   [][2]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		weights: make(map[string]int64),
	}
}

// AddVertex inserts a vertex with the given weight. Re-adding an
// existing vertex overwrites its weight.
func (g *Graph) AddVertex(name string, weight int64) {
	g.weights[name] = weight
}

// AddEdge records an undirected edge between two named vertices.
// The endpoints are validated at Encode time, not here.
func (g *Graph) AddEdge(a, b string) {
	g.edges = append(g.edges, [2]string{a, b})
}

// Order returns the number of vertices.
func (g *Graph) Order() int {
	return len(g.weights)
}

// Encoded is the dense, read-only form of a graph. Vertex i is
// Names[i] with weight Weights[i]; Adj[i] has bit j set iff vertices
// i and j share an edge. Full is the all-ones mask over 0..n-1.
//
// Encoded is safe to share across goroutines as long as no caller
// mutates the contained bitsets; the enumerator never does.
type Encoded struct {
	Names   []string
	Weights []int64
	Adj     []*bitset.BitSet
	Full    *bitset.BitSet

	index map[string]int
}

// Encode produces the dense representation. Vertices are ordered by
// name so the encoding is stable across runs. It fails if an edge
// references an unknown vertex or a vertex carries a negative weight.
func (g *Graph) Encode() (*Encoded, error) {
	names := make([]string, 0, len(g.weights))
	for name := range g.weights {
		names = append(names, name)
	}
	sort.Strings(names)

	enc := &Encoded{
		Names:   names,
		Weights: make([]int64, len(names)),
		Adj:     make([]*bitset.BitSet, len(names)),
		Full:    bitset.New(uint(len(names))),
		index:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		w := g.weights[name]
		if w < 0 {
			return nil, &NegativeWeightError{Vertex: name, Weight: w}
		}
		enc.Weights[i] = w
		enc.Adj[i] = bitset.New(uint(len(names)))
		enc.Full.Set(uint(i))
		enc.index[name] = i
	}

	for _, e := range g.edges {
		a, ok := enc.index[e[0]]
		if !ok {
			return nil, &UnknownVertexError{Vertex: e[0], Edge: e}
		}
		b, ok := enc.index[e[1]]
		if !ok {
			return nil, &UnknownVertexError{Vertex: e[1], Edge: e}
		}
		if a == b {
			continue
		}
		enc.Adj[a].Set(uint(b))
		enc.Adj[b].Set(uint(a))
	}

	return enc, nil
}

// Order returns the number of vertices in the encoding.
func (e *Encoded) Order() int {
	return len(e.Names)
}

// Index returns the dense index of a named vertex.
func (e *Encoded) Index(name string) (int, bool) {
	i, ok := e.index[name]
	return i, ok
}

// Members expands a vertex mask into the corresponding names. The
// ordering is ascending by index, which is ascending by name because
// the encoding sorts vertices by name.
func (e *Encoded) Members(mask *bitset.BitSet) []string {
	out := make([]string, 0, mask.Count())
	for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
		out = append(out, e.Names[i])
	}
	return out
}
