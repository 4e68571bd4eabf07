package preview

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Toast is one live toast in a Stack.
type Toast struct {
	ID      uuid.UUID
	Message string
	Options ToastOptions
	Created time.Time
	Expires time.Time
}

// Remaining returns the fraction of lifetime left at now, in [0, 1].
func (t Toast) Remaining(now time.Time) float64 {
	total := t.Expires.Sub(t.Created)
	if total <= 0 {
		return 0
	}
	left := t.Expires.Sub(now)
	switch {
	case left <= 0:
		return 0
	case left >= total:
		return 1
	}
	return float64(left) / float64(total)
}

// Expired reports whether the toast should be removed at now.
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// Stack is an in-terminal Toaster. Toasts expire after their duration;
// only the newest maxVisible are shown.
type Stack struct {
	mu         sync.Mutex
	toasts     []Toast
	maxVisible int
	now        func() time.Time
	onChange   func()
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithClock sets the time source.
func WithClock(now func() time.Time) StackOption {
	return func(s *Stack) {
		s.now = now
	}
}

// WithOnChange registers a callback invoked after a toast is added.
// It runs on the caller's goroutine without the stack lock held.
func WithOnChange(fn func()) StackOption {
	return func(s *Stack) {
		s.onChange = fn
	}
}

// NewStack creates a stack showing at most maxVisible toasts (minimum 1).
func NewStack(maxVisible int, opts ...StackOption) *Stack {
	s := &Stack{
		maxVisible: max(1, maxVisible),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddToast implements Toaster.
func (s *Stack) AddToast(message string, opts ToastOptions) {
	s.mu.Lock()
	now := s.now()
	s.toasts = append(s.toasts, Toast{
		ID:      uuid.New(),
		Message: message,
		Options: opts,
		Created: now,
		Expires: now.Add(opts.Duration()),
	})
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// SetMaxVisible changes how many toasts are shown at once.
func (s *Stack) SetMaxVisible(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxVisible = max(1, n)
}

// Visible drops expired toasts and returns the newest live ones,
// oldest first.
func (s *Stack) Visible() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	start := max(0, len(s.toasts)-s.maxVisible)
	return append([]Toast(nil), s.toasts[start:]...)
}

// Prune removes expired toasts and returns how many were removed.
func (s *Stack) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.now())
}

func (s *Stack) pruneLocked(now time.Time) int {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	removed := len(s.toasts) - len(kept)
	clear(s.toasts[len(kept):])
	s.toasts = kept
	return removed
}

// Dismiss removes the toast with the given ID.
func (s *Stack) Dismiss(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of toasts, including ones not yet pruned.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Now returns the stack's current time.
func (s *Stack) Now() time.Time {
	return s.now()
}
