package tracking

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Registry keeps one viewer per order id so that repeated page loads share
// the same progress, and so shutdown can stop every timer.
type Registry struct {
	src StatusSource
	log zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	viewers map[string]*Viewer
}

func NewRegistry(src StatusSource, log zerolog.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		src:     src,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		viewers: make(map[string]*Viewer),
	}
}

// Watch returns the viewer for s.OrderID, starting one if needed.
func (r *Registry) Watch(s Subject) *Viewer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.viewers[s.OrderID]; ok {
		return v
	}
	v := Start(r.ctx, r.src, s, r.log)
	r.viewers[s.OrderID] = v
	go r.forget(s.OrderID, v)
	return v
}

// forget drops v once its source returns, unless it was already replaced.
func (r *Registry) forget(orderID string, v *Viewer) {
	<-v.Done()
	r.mu.Lock()
	if r.viewers[orderID] == v {
		delete(r.viewers, orderID)
	}
	r.mu.Unlock()
}

// Len reports how many viewers are still running.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.viewers)
}

func (r *Registry) Get(orderID string) (*Viewer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.viewers[orderID]
	return v, ok
}

// Stop tears down the viewer for orderID. It reports false if none existed.
func (r *Registry) Stop(orderID string) bool {
	r.mu.Lock()
	v, ok := r.viewers[orderID]
	delete(r.viewers, orderID)
	r.mu.Unlock()
	if ok {
		v.Stop()
	}
	return ok
}

func (r *Registry) Close() {
	r.cancel()
	r.mu.Lock()
	viewers := r.viewers
	r.viewers = make(map[string]*Viewer)
	r.mu.Unlock()
	for _, v := range viewers {
		<-v.Done()
	}
}
