// Package analysis post-processes simulation output.
//
// It estimates the ordering transition temperature from a recorded
// schedule, summarizes observables across records, and scans per-node
// energies for weakly bound (susceptible) nodes.
package analysis
