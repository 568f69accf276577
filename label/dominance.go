package label

// Dominates reports whether a dominates b under the canonical RCSPP
// dominance relation: a.Cost ≤ b.Cost and a.Resources ≤ b.Resources componentwise,
// with at least one strict inequality required unless a and b are
// identical (in which case ties are broken by insertion order at the call
// site, never here). The rule is the same for both directions: a forward
// label's Resources track consumption from the source, a backward label's
// track consumption of the sink-side suffix, and in both cases spending
// less to reach the same vertex at no higher cost is strictly better.
//
// a and b must be at the same vertex and have the same Direction; this is
// the caller's responsibility (Store only ever compares same-vertex,
// same-direction labels).
func Dominates(a, b Label) bool {
	if a.Cost > b.Cost {
		return false
	}
	strict := a.Cost < b.Cost
	for i := range a.Resources {
		if a.Resources[i] > b.Resources[i] {
			return false
		}
		if a.Resources[i] < b.Resources[i] {
			strict = true
		}
	}
	if strict {
		return true
	}
	// Identical cost and resources: treat as dominating so the earlier
	// (already-stored) label is kept and the duplicate candidate is
	// rejected: ties are broken deterministically by insertion order.
	return true
}

// Store holds, per vertex, the current Pareto frontier of non-dominated
// label ids for one direction. Labels are bucketed per vertex and kept
// sorted by critical resource (Resources[0]) to make "is dominated by any"
// and "remove all dominated by" cheap to scan in the common case of a
// modestly sized frontier — the Design Notes' "bucketed list keyed on the
// critical resource" structure.
type Store struct {
	direction Direction
	arena     *Arena
	buckets   [][]int
}

// NewStore returns an empty per-vertex dominance store for numVertices
// vertices and the given direction.
func NewStore(numVertices int, direction Direction, arena *Arena) *Store {
	return &Store{
		direction: direction,
		arena:     arena,
		buckets:   make([][]int, numVertices),
	}
}

// IsDominated reports whether candidate is dominated by any label currently
// stored at its vertex.
func (s *Store) IsDominated(candidate Label) bool {
	for _, id := range s.buckets[candidate.Vertex] {
		if Dominates(s.arena.Get(id), candidate) {
			return true
		}
	}
	return false
}

// Insert adds id (whose label is already known not to be dominated by the
// current frontier — callers must check IsDominated first) to the frontier
// at its vertex, removing every stored label that id now dominates.
// Complexity: O(n) in the size of the vertex's current frontier.
func (s *Store) Insert(id int) {
	cand := s.arena.Get(id)
	v := cand.Vertex
	kept := s.buckets[v][:0]
	for _, other := range s.buckets[v] {
		if !Dominates(cand, s.arena.Get(other)) {
			kept = append(kept, other)
		}
	}
	kept = append(kept, id)
	s.buckets[v] = insertSortedByCritical(kept, s.arena)
}

// Labels returns the current non-dominated label ids at vertex v.
func (s *Store) Labels(v int) []int {
	return s.buckets[v]
}

// Active reports whether id is still present in its vertex's frontier, i.e.
// has not since been removed by a later, dominating Insert. A search loop
// uses this to discard stale frontier-heap entries lazily at pop time rather
// than eagerly deleting from the heap on dominance.
func (s *Store) Active(id int) bool {
	v := s.arena.Get(id).Vertex
	for _, other := range s.buckets[v] {
		if other == id {
			return true
		}
	}
	return false
}

func insertSortedByCritical(ids []int, arena *Arena) []int {
	// A plain insertion sort is sufficient: Insert appends at most one new
	// id per call, so the slice is already sorted except for its last
	// element.
	for i := len(ids) - 1; i > 0; i-- {
		if arena.Get(ids[i-1]).Resources[0] <= arena.Get(ids[i]).Resources[0] {
			break
		}
		ids[i-1], ids[i] = ids[i], ids[i-1]
	}
	return ids
}
