package sales

import (
	"sort"
	"sync"
)

// Guard is a pluggable concurrency-control strategy over product stock
// updates. Acquire takes the product IDs one transition will touch and
// returns a release func. The default NopGuard matches the observed
// behavior of the system: no protection at all, so two concurrent
// deliveries against the same product can over-debit (lost update).
type Guard interface {
	Acquire(productIDs []string) (release func())
}

// NopGuard performs no locking.
type NopGuard struct{}

func (NopGuard) Acquire([]string) func() { return func() {} }

// ProductGuard serializes stock updates per product. Locks are taken in
// sorted ID order so two transitions over overlapping products cannot
// deadlock.
type ProductGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProductGuard instantiates a ProductGuard with no held locks.
func NewProductGuard() *ProductGuard {
	return &ProductGuard{locks: map[string]*sync.Mutex{}}
}

func (g *ProductGuard) lockFor(id string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.locks[id]
	if !ok {
		l = &sync.Mutex{}
		g.locks[id] = l
	}
	return l
}

func (g *ProductGuard) Acquire(productIDs []string) func() {
	ids := make([]string, 0, len(productIDs))
	seen := map[string]bool{}
	for _, id := range productIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		l := g.lockFor(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
