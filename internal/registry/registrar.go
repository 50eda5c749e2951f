package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/storyloom/storyloom/internal/model"
)

// Result is what a pending request eventually resolves to
type Result struct {
	Code    model.ResponseCode
	Payload any
}

// Handle is the waitable side of a registered request. It is resolved
// at most once.
type Handle struct {
	ch chan Result
}

// Wait blocks until the request is resolved or the context ends
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case result := <-h.ch:
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Registrar bridges synchronous callers to asynchronous, event-driven
// results: a caller registers a request id, hands the id to whatever
// will eventually produce the result, and waits on the handle.
//
// Requests are registered before the work that resolves them is
// dispatched, so Resolve never races ahead of Register; resolving an
// unknown or already-resolved id is a harmless no-op.
type Registrar struct {
	logger *slog.Logger

	mu           sync.Mutex
	pending      map[string]*Handle
	shuttingDown bool
}

// New creates a registrar
func New(logger *slog.Logger) *Registrar {
	return &Registrar{
		logger:  logger.With("component", "registry"),
		pending: make(map[string]*Handle),
	}
}

// Register creates a single-resolution slot for the request id. Fails
// with ErrDuplicateRequest if the id is already pending, or
// ErrShuttingDown after Shutdown.
func (r *Registrar) Register(requestID string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shuttingDown {
		return nil, model.ErrShuttingDown
	}
	if _, exists := r.pending[requestID]; exists {
		return nil, model.ErrDuplicateRequest
	}

	h := &Handle{ch: make(chan Result, 1)}
	r.pending[requestID] = h
	return h, nil
}

// Resolve completes the pending request exactly once. Unknown or
// already-resolved ids are ignored.
func (r *Registrar) Resolve(requestID string, result Result) {
	r.mu.Lock()
	h, ok := r.pending[requestID]
	if ok {
		delete(r.pending, requestID)
	}
	r.mu.Unlock()

	if ok {
		h.ch <- result
	}
}

// Pending returns the number of unresolved requests
func (r *Registrar) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Shutdown resolves every pending request with the shutting-down code
// and rejects all future registrations. Idempotent.
func (r *Registrar) Shutdown() {
	r.mu.Lock()
	if r.shuttingDown {
		r.mu.Unlock()
		return
	}
	r.shuttingDown = true
	drained := r.pending
	r.pending = make(map[string]*Handle)
	r.mu.Unlock()

	for _, h := range drained {
		h.ch <- Result{Code: model.CodeShuttingDown}
	}
	r.logger.Info("registrar shut down", "drained", len(drained))
}
