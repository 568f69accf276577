package engine

import (
	"container/heap"

	"github.com/rcspp-go/rcspp/label"
)

// frontierItem is one pending label waiting to be expanded, ordered by its
// critical resource (Resources[0]), then by its scalar cost.
type frontierItem struct {
	id       int
	critical float64
	cost     float64
}

// frontierHeap is a container/heap min-priority queue over frontierItems.
// Both a forward label's critical resource (consumption from the source)
// and a backward label's (consumption of the sink-side suffix) accumulate
// upward from zero at their own origin, so both frontiers pop in the same
// ascending order — standard Dijkstra-style label setting, applied
// symmetrically from each end.
type frontierHeap struct {
	items []frontierItem
}

func (h *frontierHeap) Len() int { return len(h.items) }

func (h *frontierHeap) Less(i, j int) bool {
	if h.items[i].critical != h.items[j].critical {
		return h.items[i].critical < h.items[j].critical
	}
	return h.items[i].cost < h.items[j].cost
}

func (h *frontierHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *frontierHeap) Push(x any) { h.items = append(h.items, x.(frontierItem)) }

func (h *frontierHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Frontier is the lazy-decrease-key priority queue one direction's search
// loop pulls pending labels from, keyed by critical resource. Dominated
// labels are never removed from the heap proactively; a label popped after
// it has since been dominated is simply skipped by the caller (checked
// against the Store before expansion), the usual lazy-deletion shape for a
// heap that can't cheaply decrease a key in place.
type Frontier struct {
	h     *frontierHeap
	arena *label.Arena
}

// NewFrontier returns an empty frontier backed by arena for critical-resource
// lookups. dir is accepted for call-site clarity (a Frontier is always
// built once per direction) though both directions order identically.
func NewFrontier(dir label.Direction, arena *label.Arena) *Frontier {
	_ = dir
	return &Frontier{h: &frontierHeap{}, arena: arena}
}

// Push enqueues label id for future expansion.
func (f *Frontier) Push(id int) {
	l := f.arena.Get(id)
	heap.Push(f.h, frontierItem{id: id, critical: l.Resources[0], cost: l.Cost})
}

// Pop removes and returns the next label id in label-setting order, and
// whether the frontier was non-empty.
func (f *Frontier) Pop() (int, bool) {
	if f.h.Len() == 0 {
		return 0, false
	}
	item := heap.Pop(f.h).(frontierItem)
	return item.id, true
}

// Len reports the number of pending (not yet popped) labels.
func (f *Frontier) Len() int { return f.h.Len() }

// Peek reports the critical resource of the next label to be popped, without
// removing it, and whether the frontier is non-empty. Used by the halfway
// coordination logic to compare how far each side has progressed.
func (f *Frontier) Peek() (float64, bool) {
	if f.h.Len() == 0 {
		return 0, false
	}
	return f.h.items[0].critical, true
}
