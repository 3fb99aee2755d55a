package greenland

import (
	"errors"
	"fmt"

	"github.com/evz/greenland/graph"
)

var (
	// ErrInvalidTarget is returned when the closeness target is not
	// positive.
	ErrInvalidTarget = errors.New("target must be positive")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidWorkers is returned when a configured worker count is
	// not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")

	// ErrInvalidGraph unifies graph encoding failures. The underlying
	// structured error (graph.UnknownVertexError or
	// graph.NegativeWeightError) remains reachable via errors.As.
	ErrInvalidGraph = errors.New("invalid graph")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var uv *graph.UnknownVertexError
	if errors.As(err, &uv) {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	var nw *graph.NegativeWeightError
	if errors.As(err, &nw) {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}

	return err
}
