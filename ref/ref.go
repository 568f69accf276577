// Package ref defines the pluggable resource-extension function (REF) bundle
// used to advance a label's resource vector along an edge, and the additive
// defaults used when a caller does not override a particular transform.
//
// A ref.Set has three independently overridable slots — forward, backward,
// and join — each defaulting to the natural additive
// implementation a caller needs for ordinary componentwise resource
// consumption, following the "any subset may be overridden, the rest
// default" shape common to functional-options configs.
package ref

import "errors"

// ErrWrongLength is returned by ValidateLength when a REF returns a resource
// vector whose length does not match the graph's resource dimension.
var ErrWrongLength = errors.New("ref: callback returned wrong-length resource vector")

// ErrNotMonotone is returned by ValidateMonotone when a REF's returned
// critical resource (index 0) violates the required strict monotonicity: it
// must strictly increase on every extension, forward or backward.
var ErrNotMonotone = errors.New("ref: critical resource is not strictly monotone")

// Fwd computes the resources accumulated by extending a forward label with
// accumulated resources `acc` along edge (v, w) whose own consumption is
// `edgeRes`. path is the vertex sequence of the label being extended
// (source…v) and cost is its accumulated cost before this edge, both
// supplied so a user REF can implement path-dependent bookkeeping (e.g. an
// elementarity visited-set) without the core needing to know about it.
type Fwd func(acc []float64, v, w int, edgeRes []float64, path []int, cost float64) []float64

// Bwd computes the resources accumulated by a backward label extending from
// w toward v across edge (v, w). A backward label's Resources track
// consumption of the sink…w suffix, accumulated from zero at the sink
// exactly as a forward label accumulates from zero at the source; Bwd
// mirrors Fwd rather than inverting it.
type Bwd func(acc []float64, v, w int, edgeRes []float64, path []int, cost float64) []float64

// Join computes the resource vector of a path formed by bridging a forward
// label's resources rFwd (accumulated up to v) and a backward label's
// resources rBwd (accumulated up to w, i.e. from the sink) across edge
// (v, w) whose own consumption is edgeRes.
type Join func(rFwd, rBwd []float64, v, w int, edgeRes []float64) []float64

// Set bundles the three REF slots. Any of Fwd, Bwd, Join may be nil, in
// which case Resolve fills it with the corresponding additive default.
type Set struct {
	Fwd  Fwd
	Bwd  Bwd
	Join Join
}

// Resolve returns a Set with every nil slot replaced by its additive
// default, ready to drive an engine run.
func Resolve(s Set) Set {
	if s.Fwd == nil {
		s.Fwd = AdditiveFwd
	}
	if s.Bwd == nil {
		s.Bwd = AdditiveBwd
	}
	if s.Join == nil {
		s.Join = AdditiveJoin
	}
	return s
}

// AdditiveFwd is the default forward REF: elementwise sum of the
// accumulated resources and the edge's consumption.
func AdditiveFwd(acc []float64, _, _ int, edgeRes []float64, _ []int, _ float64) []float64 {
	out := make([]float64, len(acc))
	for i := range acc {
		out[i] = acc[i] + edgeRes[i]
	}
	return out
}

// AdditiveBwd is the default backward REF: elementwise sum of the
// accumulated suffix resources and the edge's consumption, mirroring
// AdditiveFwd.
func AdditiveBwd(acc []float64, _, _ int, edgeRes []float64, _ []int, _ float64) []float64 {
	out := make([]float64, len(acc))
	for i := range acc {
		out[i] = acc[i] + edgeRes[i]
	}
	return out
}

// AdditiveJoin is the default join REF: the total resource vector of the
// source…v→w…sink path, the forward prefix plus the bridge edge's own
// consumption plus the backward suffix.
func AdditiveJoin(rFwd, rBwd []float64, _, _ int, edgeRes []float64) []float64 {
	out := make([]float64, len(rFwd))
	for i := range rFwd {
		out[i] = rFwd[i] + edgeRes[i] + rBwd[i]
	}
	return out
}

// ValidateLength reports ErrWrongLength if got does not have length want.
func ValidateLength(got []float64, want int) error {
	if len(got) != want {
		return ErrWrongLength
	}
	return nil
}

// ValidateMonotone checks the critical-resource monotonicity invariant
// required of any admissible REF: the critical resource must strictly
// increase on extension, in either direction — a forward label's
// Resources[0] grows from zero at the source, a backward label's grows from
// zero at the sink, and both must strictly grow on every edge traversed.
// The forward parameter is accepted for call-site clarity but does not
// change the check; it is checked at expansion time, not proactively,
// since a violation would otherwise corrupt the halfway invariant.
func ValidateMonotone(before, after float64, forward bool) error {
	_ = forward
	if after <= before {
		return ErrNotMonotone
	}
	return nil
}
