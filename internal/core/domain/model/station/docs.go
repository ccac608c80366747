// Package station models the static transit network the relay system routes
// over. Stations form a small undirected graph that is loaded once at startup
// and never mutated afterwards; hop distances and planned paths are computed
// with a breadth-first search whose tie-breaks follow adjacency insertion
// order, so results are deterministic for a given network definition.
package station
