// Package identity holds the three authentication domains of the HaulBay
// client: dealer (bearer token), individual user (cookie session with cache
// fallback), and administrator (cookie session, always fresh). Each domain is
// an injectable provider with an explicit lifecycle; they are composed at the
// application root, never shared as globals.
package identity

import (
	"context"
	"sync"
)

// Resolution is the tri-state outcome of a domain's credential resolution.
type Resolution int

const (
	// ResolutionPending means resolution is in flight or not yet attempted.
	// Consumers must treat it as neither authenticated nor anonymous.
	ResolutionPending Resolution = iota
	// ResolutionAuthenticated means a profile snapshot is present.
	ResolutionAuthenticated
	// ResolutionAnonymous means no valid credential exists.
	ResolutionAnonymous
)

func (r Resolution) String() string {
	switch r {
	case ResolutionAuthenticated:
		return "authenticated"
	case ResolutionAnonymous:
		return "anonymous"
	default:
		return "pending"
	}
}

// resolver is the shared state machine core of every provider. It guards the
// profile snapshot of its owner (mutated only through apply callbacks run
// under mu), hands out a generation per resolution attempt, and discards
// commits from stale generations so an in-flight fetch can never clobber a
// later login, logout, or clear.
type resolver struct {
	mu       sync.Mutex
	res      Resolution
	gen      uint64
	resolved chan struct{}
}

func newResolver() *resolver {
	return &resolver{res: ResolutionPending, resolved: make(chan struct{})}
}

// begin moves the domain into pending and returns the generation that the
// matching finish call must present.
func (r *resolver) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.res != ResolutionPending {
		r.res = ResolutionPending
		r.resolved = make(chan struct{})
	}
	return r.gen
}

// finish commits the outcome of the resolution started under gen. apply, if
// non-nil, mutates the owner's snapshot under the lock, so snapshot and
// resolution always change together. A stale generation is discarded and
// finish reports false. An accepted commit retires its generation, so each
// attempt settles at most once.
func (r *resolver) finish(gen uint64, res Resolution, apply func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.gen++
	if apply != nil {
		apply()
	}
	r.settle(res)
	return true
}

// force commits a state transition outside any resolution cycle (login
// adoption, logout, clear). It bumps the generation so in-flight resolutions
// become stale.
func (r *resolver) force(res Resolution, apply func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if apply != nil {
		apply()
	}
	r.settle(res)
}

// settle records a terminal resolution and releases waiters. Callers hold mu.
func (r *resolver) settle(res Resolution) {
	r.res = res
	select {
	case <-r.resolved:
	default:
		close(r.resolved)
	}
}

func (r *resolver) resolution() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.res
}

// read runs fn under the lock, for consistent snapshot reads.
func (r *resolver) read(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// waitResolved blocks until the domain leaves pending or ctx ends. Each
// resolution attempt settles exactly once, so waiters cannot hang on a
// completed attempt.
func (r *resolver) waitResolved(ctx context.Context) error {
	r.mu.Lock()
	ch := r.resolved
	pending := r.res == ResolutionPending
	r.mu.Unlock()

	if !pending {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
