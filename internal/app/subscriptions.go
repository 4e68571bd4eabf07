package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/toasty/internal/notify"
)

// subscriptionManager owns the change subscriptions of a running
// application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []*notify.Subscription
	app           *Application

	// settingsPending coalesces bursts of setting changes into one reload.
	settingsPending atomic.Bool
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{app: app}
}

// setupSubscriptions registers all subscriptions.
func (sm *subscriptionManager) setupSubscriptions() {
	// Option changes -> debug log
	sm.addSubscription(sm.app.store.Subscribe(sm.handleOptionChange))

	// Settings file reloads -> event loop
	sm.addSubscription(sm.app.config.Subscribe(sm.handleSettingsChange))
}

// addSubscription adds a subscription to the managed list.
func (sm *subscriptionManager) addSubscription(sub *notify.Subscription) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subscriptions = append(sm.subscriptions, sub)
}

// cleanup unsubscribes all managed subscriptions.
// Safe to call multiple times (idempotent).
func (sm *subscriptionManager) cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, sub := range sm.subscriptions {
		sub.Unsubscribe()
	}
	sm.subscriptions = nil
}

// handleOptionChange runs on the event loop, where the store is mutated.
func (sm *subscriptionManager) handleOptionChange(c notify.Change) {
	log := sm.app.Logger().WithComponent("store")
	if c.Type == notify.ChangeReload {
		log.Debug("options reloaded (%s)", c.Source)
		return
	}
	log.Debug("%s: %v -> %v (%s)", c.Path, c.OldValue, c.NewValue, c.Source)
}

// handleSettingsChange runs on the file watcher goroutine. It only posts
// to the event loop.
func (sm *subscriptionManager) handleSettingsChange(notify.Change) {
	if !sm.settingsPending.CompareAndSwap(false, true) {
		return
	}
	if err := sm.app.post(settingsEvent{}); err != nil {
		sm.settingsPending.Store(false)
		sm.app.logComponentError("config", err)
	}
}
