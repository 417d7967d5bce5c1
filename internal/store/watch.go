package store

import "sync"

// Hub broadcasts collection change notifications. Subscriber channels are
// buffered and sends never block: a subscriber that has not drained its
// channel coalesces pending notifications into one, which is safe because
// consumers always recompute from the latest data.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan string
	next int
	revs map[string]uint64
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan string),
		revs: make(map[string]uint64),
	}
}

// Touch records a change to the named collection and notifies all
// subscribers without blocking.
func (h *Hub) Touch(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.revs[collection]++
	for _, ch := range h.subs {
		select {
		case ch <- collection:
		default:
		}
	}
}

// Subscribe registers a listener and returns its channel along with a
// cancel function that releases the subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan string, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan string, 1)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Revision returns how many times the collection has been touched since
// the hub was created.
func (h *Hub) Revision(collection string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revs[collection]
}
