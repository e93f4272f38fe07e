// Package notify implements the transient user-facing notification channel:
// one toast visible at a time, newest replaces current, auto-dismiss after a
// fixed duration.
package notify

import (
	"sync"
	"time"
)

// Severity classifies a toast.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is one transient message.
type Toast struct {
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Sink receives every toast as it is shown. The CLI wires a logger here.
type Sink func(Toast)

// Center holds at most one visible toast.
type Center struct {
	mu      sync.Mutex
	current *Toast
	ttl     time.Duration
	now     func() time.Time
	sink    Sink
}

// NewCenter returns a center with the default dismiss duration. sink may be
// nil.
func NewCenter(sink Sink) *Center {
	return &Center{ttl: DefaultTTL, now: time.Now, sink: sink}
}

// Show displays a toast, replacing whatever is currently visible.
func (c *Center) Show(message string, severity Severity) {
	c.mu.Lock()
	t := Toast{Message: message, Severity: severity, ShownAt: c.now()}
	c.current = &t
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(t)
	}
}

// Success is shorthand for a success toast.
func (c *Center) Success(message string) { c.Show(message, Success) }

// Error is shorthand for an error toast.
func (c *Center) Error(message string) { c.Show(message, Error) }

// Current returns the visible toast, if any. A toast older than the dismiss
// duration is gone.
func (c *Center) Current() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Toast{}, false
	}
	if c.now().Sub(c.current.ShownAt) >= c.ttl {
		c.current = nil
		return Toast{}, false
	}
	return *c.current, true
}
