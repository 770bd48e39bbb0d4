package graph

import "errors"

// Domain errors for graph construction and indexing.
var (
	// ErrEmptyGraph indicates a graph with no nodes was handed to the engine.
	ErrEmptyGraph = errors.New("graph: no nodes")

	// ErrUnknownNode indicates an edge references a node missing from the index.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("graph: self-loop not supported")
)
