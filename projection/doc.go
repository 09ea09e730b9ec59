// Package projection derives rendering-ready views from store snapshots.
//
// Every function here is pure and deterministic for identical input, so
// a renderer can diff consecutive outputs. Sorts are stable: ties keep
// the snapshot's original order. Projections are recomputed fresh on
// every call; no incremental state is kept.
package projection
