package engine

import (
	"math"

	"github.com/rcspp-go/rcspp/graph"
	"github.com/rcspp-go/rcspp/label"
)

// joinEps absorbs the float64 rounding a chain of REF calls can accumulate
// before the bridge-consistency check compares the joined critical resource
// against the sum of its three independently computed parts.
const joinEps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < joinEps }

// tryJoinFromForward is called right after a forward label is inserted into
// its Store at vertex v. It scans every outgoing edge (v, w) and checks it
// as a Righini-Salani bridge against every backward label currently stored
// at w.
func (r *runner) tryJoinFromForward(fwdID int) error {
	lblF := r.arenaF.Get(fwdID)
	v := lblF.Vertex
	for _, eid := range r.g.Forward(v) {
		e := r.g.Edge(eid)
		for _, bwdID := range r.storeB.Labels(e.Head) {
			if err := r.considerJoin(fwdID, bwdID, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// tryJoinFromBackward is the symmetric hook, called right after a backward
// label is inserted at vertex w: it scans every incoming edge (v, w) and
// checks it against every forward label stored at v.
func (r *runner) tryJoinFromBackward(bwdID int) error {
	lblB := r.arenaB.Get(bwdID)
	w := lblB.Vertex
	for _, eid := range r.g.Backward(w) {
		e := r.g.Edge(eid)
		for _, fwdID := range r.storeF.Labels(e.Tail) {
			if err := r.considerJoin(fwdID, bwdID, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// considerJoin evaluates one candidate bridge join: forward label fwdID
// ending at e.Tail, backward label bwdID ending at e.Head, bridged by e.
func (r *runner) considerJoin(fwdID, bwdID int, e graph.Edge) error {
	lblF := r.arenaF.Get(fwdID)
	lblB := r.arenaB.Get(bwdID)

	if r.opts.Elementary {
		fwdPath := r.arenaF.Path(fwdID)
		bwdPath := reversed(r.arenaB.Path(bwdID))
		if overlaps(fwdPath, bwdPath) {
			return nil
		}
	}

	res := r.refs.Join(lblF.Resources, lblB.Resources, e.Tail, e.Head, e.Resources)
	if len(res) != r.resourceLen {
		return ErrBadCallback
	}

	// Bridge consistency: the joined critical resource must equal the
	// forward label's own critical resource, plus the edge's own critical
	// consumption, plus the backward label's own critical resource — the
	// three pieces the two independent searches and the bridge edge each
	// separately contributed. The default additive Join always satisfies
	// this by construction; a user-supplied Join that doesn't is bridging
	// labels that were never actually on the same source-to-sink walk.
	if !almostEqual(res[0], lblF.Resources[0]+e.Resources[0]+lblB.Resources[0]) {
		return nil
	}

	if !withinBounds(res, r.minRes, r.maxRes) {
		return nil
	}

	cost := lblF.Cost + lblB.Cost + e.Cost
	cand := candidate{
		cost:      cost,
		resources: res,
		path:      joinedPath(r.arenaF, fwdID, r.arenaB, bwdID),
	}
	r.updateBest(cand)
	return nil
}

// joinedPath assembles the full source-to-sink vertex sequence from a
// forward label's path (source…v) and a backward label's path (sink…w,
// reversed here to w…sink).
func joinedPath(arenaF *label.Arena, fwdID int, arenaB *label.Arena, bwdID int) []int {
	fwdPath := arenaF.Path(fwdID)
	bwdPath := reversed(arenaB.Path(bwdID))
	out := make([]int, 0, len(fwdPath)+len(bwdPath))
	out = append(out, fwdPath...)
	out = append(out, bwdPath...)
	return out
}

func reversed(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func overlaps(a, b []int) bool {
	seen := make(map[int]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := seen[v]; ok {
			return true
		}
	}
	return false
}

func withinBounds(res, minRes, maxRes []float64) bool {
	for i := range res {
		if res[i] > maxRes[i] || res[i] < minRes[i] {
			return false
		}
	}
	return true
}

// updateBest installs cand as the new incumbent if it improves on the
// current best (or there is none yet).
func (r *runner) updateBest(cand candidate) {
	if r.best == nil || cand.betterThan(*r.best) {
		c := cand
		r.best = &c
	}
}
