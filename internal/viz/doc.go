// Package viz renders a live terminal view of a running temperature sweep:
// a growing magnetization-vs-temperature plot beside the latest observable
// readings.
package viz
