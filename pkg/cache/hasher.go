// Package cache provides a Redis-backed implementation of
// preprocess.TableSource, keyed by a canonical hash of the graph's
// topology, costs, and resource vectors.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/rcspp-go/rcspp/graph"
)

// GraphHash returns a deterministic, order-independent hash of g suitable
// as a preprocess.TableSource key: two graphs with the same vertices, edges,
// costs, and resource vectors hash identically regardless of build order.
func GraphHash(g *graph.Graph) string {
	if g == nil {
		return ""
	}
	hash := sha256.Sum256(canonicalize(g))
	return hex.EncodeToString(hash[:16])
}

// canonicalize builds a deterministic byte representation of g. g.Edges()
// is in insertion order, so each edge's record is formatted and the records
// are sorted before being joined, making the result independent of the
// order in which edges were added.
func canonicalize(g *graph.Graph) []byte {
	var buf []byte
	buf = append(buf, fmt.Sprintf("s:%d,t:%d,n:%d,r:%d;", g.Source(), g.Sink(), g.NumVertices(), g.ResourceLen())...)
	records := make([]string, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		records = append(records, fmt.Sprintf("e:%d:%d:%.6f:%v;", e.Tail, e.Head, e.Cost, e.Resources))
	}
	sort.Strings(records)
	for _, rec := range records {
		buf = append(buf, rec...)
	}
	return buf
}
