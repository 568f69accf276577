// Package rcspp is a bidirectional labeling engine for the
// Resource-Constrained Shortest Path Problem (RCSPP): shortest paths under
// componentwise resource bounds, not just minimum edge-weight sum.
//
// What is rcspp?
//
//	A small, dependency-light core that brings together:
//
//	  • Graph construction: dense integer vertex IDs, resource-vector edges
//	  • Label-setting search: forward, backward, or both frontiers at once
//	  • Dominance & REF: pluggable resource extension functions per edge
//
// Everything is organized under focused subpackages:
//
//	graph/       — immutable Graph, Builder, Edge/adjacency primitives
//	label/       — Label type, dominance ordering, per-vertex arenas
//	ref/         — Resource Extension Function contracts and additive REFs
//	preprocess/  — reachability and lower-bound tables feeding the search
//	engine/      — the public API: New, AddNode/AddEdge, SetDirection, Run
//
// The surrounding packages (pkg/config, pkg/rcsplog, pkg/metrics, pkg/cache,
// pkg/history) and the internal/bcformat parser and cmd/rcsppd CLI exist to
// run the engine as a real service: the engine package itself performs no
// network I/O, logging, or persistence of its own.
//
// Quick ASCII example — a shipment with a subsidized leg:
//
//	Source --c=0--> A --c=0--> B --c=-10--> C --c=0--> Sink
//
//	The cheapest route isn't the one with fewest hops: the engine finds the
//	rebate.
package rcspp
