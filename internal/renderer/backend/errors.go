package backend

import "errors"

// ErrEventQueueFull is returned by PostEvent when the queue cannot accept
// another event.
var ErrEventQueueFull = errors.New("event queue full")
