package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "set", ChangeSet.String())
	assert.Equal(t, "reload", ChangeReload.String())
	assert.Equal(t, "unknown", ChangeType(99).String())
}

func TestNotifier_SubscribeAndUnsubscribe(t *testing.T) {
	n := New()
	var got []Change

	sub := n.Subscribe(func(c Change) { got = append(got, c) })
	n.NotifySet("type", "default", "error", "form")

	assert.Len(t, got, 1)
	assert.Equal(t, "type", got[0].Path)
	assert.Equal(t, "error", got[0].NewValue)

	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifySet("type", "error", "default", "form")
	assert.Len(t, got, 1)
}

func TestNotifier_PathObservers(t *testing.T) {
	n := New()
	var typeChanges, reloads int

	n.SubscribePath("type", func(c Change) {
		if c.Type == ChangeReload {
			reloads++
			return
		}
		typeChanges++
	})

	n.NotifySet("variant", nil, nil, "form")
	n.NotifySet("type", nil, nil, "form")
	n.NotifyReload("reset")

	assert.Equal(t, 1, typeChanges)
	assert.Equal(t, 1, reloads)
}

func TestNotifier_DeliversInSubscriptionOrder(t *testing.T) {
	n := New()
	var order []int
	for i := range 5 {
		n.Subscribe(func(Change) { order = append(order, i) })
	}

	n.NotifyReload("test")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestNotifier_Close(t *testing.T) {
	n := New()
	called := false
	n.Subscribe(func(Change) { called = true })

	n.Close()
	n.Close()
	n.NotifyReload("test")
	assert.False(t, called)
}
