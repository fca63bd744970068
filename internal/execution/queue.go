package execution

import (
	"container/heap"

	"github.com/dropio12/fractal-hft/internal/order"
)

// priorityRank orders HIGH ahead of MEDIUM; lower rank dequeues first.
func priorityRank(p order.Priority) int {
	if p == order.PriorityHigh {
		return 0
	}
	return 1
}

// queueItem is one order waiting in the intake priority queue, tagged
// with a monotonic arrival sequence so equal-priority orders stay FIFO.
type queueItem struct {
	ord order.Order
	seq int64
}

// itemHeap is a container/heap.Interface ordering by (priority, seq).
type itemHeap []*queueItem

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	ri, rj := priorityRank(h[i].ord.Priority), priorityRank(h[j].ord.Priority)
	if ri != rj {
		return ri < rj
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) {
	*h = append(*h, x.(*queueItem))
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

var _ heap.Interface = (*itemHeap)(nil)
