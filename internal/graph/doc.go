// Package graph provides the undirected graph input for spin simulations.
//
// A [Graph] is built from opaque string node IDs and undirected edges.
// Before simulation it is frozen into two derived structures:
//
//   - [Index]: a bijection between node IDs and dense zero-based slots
//   - [Neighbors]: per-slot adjacency lists resolved through the Index
//
// Both are built once and never mutated afterwards, so they can be shared
// read-only across concurrent simulation runs. Parallel edges are kept as
// duplicate adjacency entries; the energy sum counts them per occurrence.
package graph
