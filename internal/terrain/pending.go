package terrain

import (
	"sync"

	"voxview/internal/world"
)

// RequestStatus is the outcome of PendingSet.Request.
type RequestStatus int

const (
	Requested RequestStatus = iota
	AlreadyPending
	QueueFull
	ShuttingDown
)

// PendingSet is the shared work list between the main goroutine and the
// workers: coordinates waiting for generation, in request order, each marked
// claimed once a worker picks it up. The exiting flag lives under the same
// lock so workers observe shutdown on their next claim.
//
// An entry stays in the set until the main goroutine consumes its result, so
// a finished-but-undrained sector is never requested twice.
type PendingSet struct {
	mu      sync.Mutex
	order   []world.SectorCoord
	claimed map[world.SectorCoord]bool
	limit   int
	exiting bool
}

// NewPendingSet bounds the set to limit outstanding coordinates.
func NewPendingSet(limit int) *PendingSet {
	return &PendingSet{
		claimed: make(map[world.SectorCoord]bool, limit),
		limit:   limit,
	}
}

// Request inserts c if it is not already pending and there is room.
func (p *PendingSet) Request(c world.SectorCoord) RequestStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exiting {
		return ShuttingDown
	}
	if _, ok := p.claimed[c]; ok {
		return AlreadyPending
	}
	if len(p.order) >= p.limit {
		return QueueFull
	}
	p.claimed[c] = false
	p.order = append(p.order, c)
	return Requested
}

// Claim marks the oldest unclaimed coordinate as taken and returns it.
// exiting is true once Shutdown has been called; ok is false when there is
// nothing to claim.
func (p *PendingSet) Claim() (c world.SectorCoord, ok bool, exiting bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exiting {
		return c, false, true
	}
	for _, cand := range p.order {
		if !p.claimed[cand] {
			p.claimed[cand] = true
			return cand, true, false
		}
	}
	return c, false, false
}

// Complete drops c from the set. Unknown coordinates are ignored.
func (p *PendingSet) Complete(c world.SectorCoord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.claimed[c]; !ok {
		return
	}
	delete(p.claimed, c)
	for i, o := range p.order {
		if o == c {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// PruneUnclaimed drops every unclaimed entry for which keep returns false
// and reports how many were dropped. Claimed entries always stay: a worker
// is already building them.
func (p *PendingSet) PruneUnclaimed(keep func(world.SectorCoord) bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.order[:0]
	dropped := 0
	for _, c := range p.order {
		if !p.claimed[c] && !keep(c) {
			delete(p.claimed, c)
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	p.order = kept
	return dropped
}

// Contains reports whether c is pending, claimed or not.
func (p *PendingSet) Contains(c world.SectorCoord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.claimed[c]
	return ok
}

// Len is the number of outstanding coordinates.
func (p *PendingSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// Unclaimed counts entries no worker has picked up yet.
func (p *PendingSet) Unclaimed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.order {
		if !p.claimed[c] {
			n++
		}
	}
	return n
}

// Full reports whether Request would refuse new coordinates for lack of room.
func (p *PendingSet) Full() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order) >= p.limit
}

// Shutdown sets the exiting flag. Further requests and claims are refused.
func (p *PendingSet) Shutdown() {
	p.mu.Lock()
	p.exiting = true
	p.mu.Unlock()
}

// Exiting reports whether Shutdown has been called.
func (p *PendingSet) Exiting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exiting
}
