package graph

import "fmt"

// UnknownVertexError indicates an edge referencing a vertex that was
// never added to the graph.
type UnknownVertexError struct {
	Vertex string
	Edge   [2]string
}

func (e *UnknownVertexError) Error() string {
	return fmt.Sprintf("graph: edge (%s, %s) references unknown vertex %q", e.Edge[0], e.Edge[1], e.Vertex)
}

// NegativeWeightError indicates a vertex with a negative weight.
// Weights must be non-negative; the enumerator's pruning depends on it.
type NegativeWeightError struct {
	Vertex string
	Weight int64
}

func (e *NegativeWeightError) Error() string {
	return fmt.Sprintf("graph: vertex %q has negative weight %d", e.Vertex, e.Weight)
}
