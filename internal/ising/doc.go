// Package ising implements the Ising spin model on an arbitrary graph.
//
// A [Model] couples a spin configuration to a frozen [graph.Neighbors]
// adjacency. The energy functional is
//
//	E = -J * sum over edges (i,j) of s_i * s_j
//
// with each stored edge counted exactly once (parallel edges per
// occurrence). [Model.Delta] gives the energy change of a single flip in
// O(degree) time, which is what makes a Metropolis sweep O(|E|) instead of
// O(n*|E|).
package ising
