// Package preview fires toast previews from configuration snapshots.
//
// A Provider is the ambient scope shared by all previews: it owns the
// placement and the Toaster that renders toasts. Each Trigger is an
// independent fire-and-forget call; nothing is deduplicated or throttled.
package preview

import (
	"sync"

	"github.com/dshills/toasty/internal/option"
)

// Toaster renders toasts. Failures inside a Toaster are its own concern;
// AddToast has no result.
type Toaster interface {
	AddToast(message string, opts ToastOptions)
}

// ToasterFunc adapts a function to the Toaster interface.
type ToasterFunc func(message string, opts ToastOptions)

// AddToast calls f.
func (f ToasterFunc) AddToast(message string, opts ToastOptions) {
	f(message, opts)
}

// Provider scopes a Toaster with a placement.
type Provider struct {
	mu           sync.RWMutex
	placement    Placement
	toaster      Toaster
	messageField string
}

// NewProvider creates a provider. An empty placement uses DefaultPlacement.
func NewProvider(placement Placement, toaster Toaster) *Provider {
	if placement == "" {
		placement = DefaultPlacement
	}
	return &Provider{
		placement:    placement,
		toaster:      toaster,
		messageField: option.FieldMessage,
	}
}

// Placement returns the current placement.
func (p *Provider) Placement() Placement {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.placement
}

// SetPlacement changes the placement for subsequent rendering.
func (p *Provider) SetPlacement(placement Placement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placement = placement
}

// Toaster returns the underlying toaster.
func (p *Provider) Toaster() Toaster {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.toaster
}

// Trigger shows one toast for s: the message field is passed positionally
// and every other field becomes an option.
func (p *Provider) Trigger(s option.Snapshot) {
	msg := ""
	if v, ok := s.Get(p.messageField); ok {
		msg = v.Str()
	}
	p.Show(msg, OptionsFromSnapshot(s, p.messageField))
}

// Show adds a toast with explicit options.
func (p *Provider) Show(message string, opts ToastOptions) {
	if t := p.Toaster(); t != nil {
		t.AddToast(message, opts)
	}
}
