package scheduler

import "sync"

// Registry tracks per-animation frame callbacks and event listeners so a
// session can be torn down without leaking handles. Each id holds at most
// one outstanding frame handle; re-registering a frame under the same id
// cancels the previous handle first. Listeners accumulate until cleanup.
type Registry struct {
	mu        sync.Mutex
	frames    map[string]func()   // cancel func for the outstanding frame
	listeners map[string][]func() // detach funcs
}

// NewRegistry creates an empty frame/listener registry.
func NewRegistry() *Registry {
	return &Registry{
		frames:    make(map[string]func()),
		listeners: make(map[string][]func()),
	}
}

// RegisterFrame records cancel as id's outstanding per-frame callback
// handle, cancelling any previous handle for the same id first.
func (r *Registry) RegisterFrame(id string, cancel func()) {
	r.mu.Lock()
	prev := r.frames[id]
	r.frames[id] = cancel
	r.mu.Unlock()

	if prev != nil {
		prev()
	}
}

// CancelFrame cancels and forgets id's outstanding frame handle, if any.
func (r *Registry) CancelFrame(id string) {
	r.mu.Lock()
	cancel := r.frames[id]
	delete(r.frames, id)
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// AddListener records a detach function for one of id's event listeners.
func (r *Registry) AddListener(id string, detach func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[id] = append(r.listeners[id], detach)
}

// Cleanup cancels id's frame and detaches all its listeners.
func (r *Registry) Cleanup(id string) {
	r.mu.Lock()
	cancel := r.frames[id]
	detachers := r.listeners[id]
	delete(r.frames, id)
	delete(r.listeners, id)
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, detach := range detachers {
		if detach != nil {
			detach()
		}
	}
}

// CleanupAll tears down every id's frame and listeners.
func (r *Registry) CleanupAll() {
	r.mu.Lock()
	frames := r.frames
	listeners := r.listeners
	r.frames = make(map[string]func())
	r.listeners = make(map[string][]func())
	r.mu.Unlock()

	for _, cancel := range frames {
		if cancel != nil {
			cancel()
		}
	}
	for _, detachers := range listeners {
		for _, detach := range detachers {
			if detach != nil {
				detach()
			}
		}
	}
}

// FrameCount reports how many ids have an outstanding frame handle.
func (r *Registry) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// ListenerCount reports how many listeners id currently holds.
func (r *Registry) ListenerCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners[id])
}
