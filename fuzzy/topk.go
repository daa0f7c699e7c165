package fuzzy

import (
	"container/heap"
	"sort"
)

// truncateToTopK keeps the best n items according to better and returns them
// ordered best-first. When n is much smaller than the input this avoids the
// full O(len log len) sort: a bounded min-heap holds the current survivors
// with the worst at the root, and only the retained n are sorted at the end.
func truncateToTopK[T any](items []T, n int, better func(a, b T) bool) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		sort.Slice(items, func(i, j int) bool { return better(items[i], items[j]) })
		return items
	}

	h := &boundedHeap[T]{
		items:  make([]T, 0, n),
		better: better,
	}
	for _, item := range items {
		if h.Len() < n {
			heap.Push(h, item)
		} else if better(item, h.items[0]) {
			h.items[0] = item
			heap.Fix(h, 0)
		}
	}

	kept := h.items
	sort.Slice(kept, func(i, j int) bool { return better(kept[i], kept[j]) })
	return kept
}

// boundedHeap is a min-heap under better: the worst retained item sits at
// the root where it can be replaced in O(log n).
type boundedHeap[T any] struct {
	items  []T
	better func(a, b T) bool
}

func (h *boundedHeap[T]) Len() int           { return len(h.items) }
func (h *boundedHeap[T]) Less(i, j int) bool { return h.better(h.items[j], h.items[i]) }
func (h *boundedHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *boundedHeap[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *boundedHeap[T]) Pop() any {
	last := len(h.items) - 1
	item := h.items[last]
	h.items = h.items[:last]
	return item
}
