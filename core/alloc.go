package core

import (
	"container/heap"
	"fmt"
	"slices"
)

// Allocator assigns and recycles contact identifiers. Released
// identifiers are reused smallest-first, so the sequence of assigned IDs
// is deterministic for any sequence of Allocate and Release calls.
//
// The allocator is pure accounting: it never touches storage and is not
// safe for concurrent use on its own. The book serializes access.
type Allocator struct {
	next     ID
	inUse    map[ID]struct{}
	released map[ID]struct{}
	pool     idHeap // min-heap over the released set
}

// NewAllocator creates an allocator whose first assigned identifier is 1.
func NewAllocator() *Allocator {
	return &Allocator{
		next:     1,
		inUse:    make(map[ID]struct{}),
		released: make(map[ID]struct{}),
	}
}

// Allocate returns the next identifier and records it as in use.
// The smallest released identifier is reused first; only when the pool is
// empty does the candidate counter advance past every known identifier.
func (a *Allocator) Allocate() ID {
	if a.pool.Len() > 0 {
		id := heap.Pop(&a.pool).(ID)
		delete(a.released, id)
		a.inUse[id] = struct{}{}
		return id
	}

	for {
		_, used := a.inUse[a.next]
		_, freed := a.released[a.next]
		if !used && !freed {
			break
		}
		a.next++
	}

	id := a.next
	a.inUse[id] = struct{}{}
	return id
}

// Release returns an identifier to the reuse pool.
// Releasing an identifier that is not in use is an invariant violation
// and is reported, not repaired.
func (a *Allocator) Release(id ID) error {
	if _, ok := a.released[id]; ok {
		return fmt.Errorf("%w: %d released twice", ErrIdentifierCollision, id)
	}
	if _, ok := a.inUse[id]; !ok {
		return fmt.Errorf("%w: %d", ErrIdentifierNotInUse, id)
	}

	delete(a.inUse, id)
	a.released[id] = struct{}{}
	heap.Push(&a.pool, id)
	return nil
}

// Reserve records an existing identifier as in use without allocating it.
// Used when rebuilding allocator state from persisted contacts.
func (a *Allocator) Reserve(id ID) error {
	if id == 0 {
		return fmt.Errorf("%w: identifiers must be positive", ErrIdentifierCollision)
	}
	if _, ok := a.inUse[id]; ok {
		return fmt.Errorf("%w: %d", ErrIdentifierInUse, id)
	}
	if _, ok := a.released[id]; ok {
		return fmt.Errorf("%w: %d reserved while in the reuse pool", ErrIdentifierCollision, id)
	}

	a.inUse[id] = struct{}{}
	return nil
}

// InUse reports whether id is currently held by a live contact.
func (a *Allocator) InUse(id ID) bool {
	_, ok := a.inUse[id]
	return ok
}

// Released returns the identifiers currently in the reuse pool, in
// ascending order.
func (a *Allocator) Released() []ID {
	ids := make([]ID, 0, len(a.released))
	for id := range a.released {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NextCandidate returns the counter value the next pool-miss allocation
// starts probing from.
func (a *Allocator) NextCandidate() ID {
	return a.next
}

type idHeap []ID

func (h idHeap) Len() int { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any) { *h = append(*h, x.(ID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	id := old[n-1]
	*h = old[:n-1]
	return id
}
