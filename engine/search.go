package engine

import (
	"context"

	"github.com/rcspp-go/rcspp/graph"
	"github.com/rcspp-go/rcspp/label"
	"github.com/rcspp-go/rcspp/preprocess"
	"github.com/rcspp-go/rcspp/ref"
)

// searchCheckInterval bounds how often the main loop checks ctx for
// cancellation (see also preprocess.negCycleCheckInterval) rather than
// checking on every single pop.
const searchCheckInterval = 256

// runner holds all per-run mutable state: both frontiers, both dominance
// stores, the shared pruning tables, and the current incumbent. One runner
// is built and discarded per Engine.Run call.
type runner struct {
	g           *graph.Graph
	opts        Options
	refs        ref.Set
	minRes      []float64
	maxRes      []float64
	resourceLen int

	live         []bool
	lbToSink     []float64
	lbFromSource []float64

	arenaF *label.Arena
	arenaB *label.Arena
	storeF *label.Store
	storeB *label.Store
	frontF *Frontier
	frontB *Frontier

	// hF and hB are the dynamic halfway markers consulted by
	// runBidirectional whenever Direction is Both: hF bounds a forward
	// label's own accumulated critical resource from above, hB bounds a
	// backward label's own accumulated critical resource from above, each
	// in its own search's coordinate. newRunner sets both to maxRes[0] (no
	// restriction beyond the per-edge bound check); runBidirectional then
	// tightens each one down using the opposite frontier's next pending
	// critical resource, so hF+hB — the combined reach of both searches —
	// never increases. A label that has crossed its own marker makes the
	// Active->Final transition: still eligible as a join endpoint via
	// considerJoin, but no longer expanded. Unused by runMonodirectional.
	hF, hB float64

	best *candidate
}

func newRunner(g *graph.Graph, opts Options, pre preprocess.Result, minRes, maxRes []float64) *runner {
	n := g.NumVertices()
	r := &runner{
		g:            g,
		opts:         opts,
		refs:         ref.Resolve(opts.REF),
		minRes:       minRes,
		maxRes:       maxRes,
		resourceLen:  g.ResourceLen(),
		live:         pre.Reachability.Live,
		lbToSink:     pre.Tables.ToSink,
		lbFromSource: pre.Tables.FromSource,
		arenaF:       label.NewArena(n * 4),
		arenaB:       label.NewArena(n * 4),
	}
	r.storeF = label.NewStore(n, label.Forward, r.arenaF)
	r.storeB = label.NewStore(n, label.Backward, r.arenaB)
	r.frontF = NewFrontier(label.Forward, r.arenaF)
	r.frontB = NewFrontier(label.Backward, r.arenaB)
	// hF/hB start fully open (no restriction beyond the per-edge bound
	// check already applied by expandForward/expandBackward) and are only
	// ever tightened once runBidirectional's loop begins popping labels.
	r.hF = maxRes[0]
	r.hB = maxRes[0]
	return r
}

// run executes the configured search and returns the best candidate found,
// or nil if none is feasible. err is ErrAborted if ctx fired before
// completion (best may still be non-nil in that case) and ErrBadCallback if
// a REF violated its contract.
func (r *runner) run(ctx context.Context) (*candidate, error) {
	zero := make([]float64, r.resourceLen)

	if r.opts.Direction != Backward {
		initF := label.Label{Vertex: r.g.Source(), Resources: append([]float64(nil), zero...), Cost: 0, Predecessor: label.NoPredecessor, Direction: label.Forward}
		if err := r.insertForward(initF); err != nil {
			return r.best, err
		}
	}
	if r.opts.Direction != Forward {
		initB := label.Label{Vertex: r.g.Sink(), Resources: append([]float64(nil), zero...), Cost: 0, Predecessor: label.NoPredecessor, Direction: label.Backward}
		if err := r.insertBackward(initB); err != nil {
			return r.best, err
		}
	}

	switch r.opts.Direction {
	case Forward:
		return r.best, r.runMonodirectional(ctx, true)
	case Backward:
		return r.best, r.runMonodirectional(ctx, false)
	default:
		return r.best, r.runBidirectional(ctx)
	}
}

func (r *runner) runMonodirectional(ctx context.Context, forward bool) error {
	front := r.frontB
	expand := r.expandBackward
	if forward {
		front = r.frontF
		expand = r.expandForward
	}
	iter := 0
	for {
		iter++
		if iter%searchCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ErrAborted
			default:
			}
		}
		id, ok := front.Pop()
		if !ok {
			return nil
		}
		store := r.storeB
		if forward {
			store = r.storeF
		}
		if !store.Active(id) {
			continue
		}
		if err := expand(id); err != nil {
			return err
		}
	}
}

// runBidirectional implements the dynamic-halfway-coordinated loop: a label
// popped on either side is only expanded while its critical resource still
// lies on its side of the current hF/hB markers; once a popped label has
// crossed its marker it makes an Active->Final transition — it stays in its
// Store as a join candidate but is not expanded further, and the frontier
// simply does not re-enqueue it. hF and hB are tightened after every pop
// using the opposite frontier's next pending critical resource, so the gap
// between them never widens and each side's reachable window shrinks
// monotonically toward the point the two searches meet. Before a crossing
// is possible, the distance from each frontier's next value to the halfway
// point is equal by construction, so the tiebreak that actually decides
// which side advances on a given iteration is which frontier currently
// holds fewer pending labels — balancing total work across both sides.
func (r *runner) runBidirectional(ctx context.Context) error {
	iter := 0
	for {
		iter++
		if iter%searchCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ErrAborted
			default:
			}
		}

		peekF, okF := r.frontF.Peek()
		peekB, okB := r.frontB.Peek()
		if !okF && !okB {
			return nil
		}
		r.tightenHalfway(peekF, okF, peekB, okB)

		advanceForward := okF && (!okB || r.frontF.Len() <= r.frontB.Len())

		if advanceForward {
			id, _ := r.frontF.Pop()
			if !r.storeF.Active(id) {
				continue
			}
			if r.arenaF.Get(id).Resources[0] > r.hF {
				continue // Active -> Final: kept for joins, not expanded
			}
			if err := r.expandForward(id); err != nil {
				return err
			}
		} else {
			id, _ := r.frontB.Pop()
			if !r.storeB.Active(id) {
				continue
			}
			if r.arenaB.Get(id).Resources[0] > r.hB {
				continue // Active -> Final: kept for joins, not expanded
			}
			if err := r.expandBackward(id); err != nil {
				return err
			}
		}
	}
}

// tightenHalfway updates hF and hB from the opposite frontier's next
// pending critical resource. A forward label beyond the point where
// maxRes[0] minus the backward frontier's next value lies can no longer
// reach any backward label currently in play within budget, so hF is
// clamped down to that point; hB is the symmetric bound in the backward
// search's own coordinate, clamped down the same way. Both bounds only
// ever shrink over a run, so hF+hB — the combined reachable window across
// both searches — never increases.
func (r *runner) tightenHalfway(peekF float64, okF bool, peekB float64, okB bool) {
	if okB {
		if bound := r.maxRes[0] - peekB; bound < r.hF {
			r.hF = bound
		}
	}
	if okF {
		if bound := r.maxRes[0] - peekF; bound < r.hB {
			r.hB = bound
		}
	}
}

// insertForward records a freshly built forward label: stores it, enqueues
// it, checks it as a direct source-to-sink hit, and checks it as a bridge
// endpoint against the opposite frontier.
func (r *runner) insertForward(l label.Label) error {
	id := r.arenaF.Append(l)
	r.storeF.Insert(id)
	r.frontF.Push(id)
	if l.Vertex == r.g.Sink() && withinBounds(l.Resources, r.minRes, r.maxRes) {
		r.updateBest(candidate{cost: l.Cost, resources: append([]float64(nil), l.Resources...), path: r.arenaF.Path(id)})
	}
	return r.tryJoinFromForward(id)
}

// insertBackward is insertForward's mirror for the backward direction.
func (r *runner) insertBackward(l label.Label) error {
	id := r.arenaB.Append(l)
	r.storeB.Insert(id)
	r.frontB.Push(id)
	if l.Vertex == r.g.Source() && withinBounds(l.Resources, r.minRes, r.maxRes) {
		r.updateBest(candidate{cost: l.Cost, resources: append([]float64(nil), l.Resources...), path: reversed(r.arenaB.Path(id))})
	}
	return r.tryJoinFromBackward(id)
}

func (r *runner) expandForward(id int) error {
	lbl := r.arenaF.Get(id)
	v := lbl.Vertex
	if !r.live[v] {
		return nil
	}
	if r.best != nil && lbl.Cost+r.lbToSink[v] >= r.best.cost {
		return nil
	}
	path := r.arenaF.Path(id)
	for _, eid := range r.g.Forward(v) {
		e := r.g.Edge(eid)
		w := e.Head
		if r.opts.Elementary && containsVertex(path, w) {
			continue
		}
		newRes := r.refs.Fwd(lbl.Resources, v, w, e.Resources, path, lbl.Cost)
		if err := ref.ValidateLength(newRes, r.resourceLen); err != nil {
			return ErrBadCallback
		}
		if err := ref.ValidateMonotone(lbl.Resources[0], newRes[0], true); err != nil {
			return ErrBadCallback
		}
		if violatesBounds(newRes, r.minRes, r.maxRes) {
			continue
		}
		cand := label.Label{Vertex: w, Resources: newRes, Cost: lbl.Cost + e.Cost, Predecessor: id, Direction: label.Forward}
		if r.storeF.IsDominated(cand) {
			continue
		}
		if err := r.insertForward(cand); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) expandBackward(id int) error {
	lbl := r.arenaB.Get(id)
	w := lbl.Vertex
	if !r.live[w] {
		return nil
	}
	if r.best != nil && lbl.Cost+r.lbFromSource[w] >= r.best.cost {
		return nil
	}
	path := r.arenaB.Path(id)
	for _, eid := range r.g.Backward(w) {
		e := r.g.Edge(eid)
		v := e.Tail
		if r.opts.Elementary && containsVertex(path, v) {
			continue
		}
		newRes := r.refs.Bwd(lbl.Resources, v, w, e.Resources, path, lbl.Cost)
		if err := ref.ValidateLength(newRes, r.resourceLen); err != nil {
			return ErrBadCallback
		}
		if err := ref.ValidateMonotone(lbl.Resources[0], newRes[0], false); err != nil {
			return ErrBadCallback
		}
		if violatesBounds(newRes, r.minRes, r.maxRes) {
			continue
		}
		cand := label.Label{Vertex: v, Resources: newRes, Cost: lbl.Cost + e.Cost, Predecessor: id, Direction: label.Backward}
		if r.storeB.IsDominated(cand) {
			continue
		}
		if err := r.insertBackward(cand); err != nil {
			return err
		}
	}
	return nil
}

func containsVertex(path []int, v int) bool {
	for _, p := range path {
		if p == v {
			return true
		}
	}
	return false
}

// violatesBounds reports whether res falls outside [minRes, maxRes] in any
// component — the per-step feasibility rejection a candidate label must
// pass before it is even checked against the dominance store, since a
// resource vector that is already infeasible must never be allowed to
// dominate (and thereby evict) a feasible stored label at the same vertex.
func violatesBounds(res, minRes, maxRes []float64) bool {
	for i := range res {
		if res[i] > maxRes[i] || res[i] < minRes[i] {
			return true
		}
	}
	return false
}
