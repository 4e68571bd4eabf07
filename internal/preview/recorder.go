package preview

import "sync"

// Call is one recorded AddToast invocation.
type Call struct {
	Message string
	Options ToastOptions
}

// Recorder is a Toaster that records every call.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// AddToast implements Toaster.
func (r *Recorder) AddToast(message string, opts ToastOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Message: message, Options: opts})
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Reset forgets all calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
