package server

import (
	"context"
	"sync"

	"github.com/swiftls/swiftls/rpc"
)

// requestRegistry is the dispatcher's active-requests table, keyed by
// request ID. Each entry holds the cancel func for the context a handler
// was started with, so $/cancelRequest can fire it from any goroutine.
type requestRegistry struct {
	mu     sync.Mutex
	active map[rpc.ID]context.CancelFunc
}

func newRequestRegistry() *requestRegistry {
	return &requestRegistry{active: make(map[rpc.ID]context.CancelFunc)}
}

// Start derives a cancellable context from parent for id and registers it.
// The returned done func must be called when the handler finishes, win or
// lose, to remove the registry entry.
func (r *requestRegistry) Start(parent context.Context, id rpc.ID) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	r.mu.Lock()
	r.active[id] = cancel
	r.mu.Unlock()
	return ctx, func() {
		r.mu.Lock()
		delete(r.active, id)
		r.mu.Unlock()
		cancel()
	}
}

// Cancel fires the cancellation token for id, if a request with that ID is
// still active. Firing the token for an unknown or already-finished
// request is a silent no-op: the request may have already replied.
func (r *requestRegistry) Cancel(id rpc.ID) {
	r.mu.Lock()
	cancel, ok := r.active[id]
	r.mu.Unlock()
	if ok {
		cancel()
	}
}
