// Package notify holds one-shot user-facing notifications until the next
// page render picks them up.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notice stays visible before auto-dismissal.
const DefaultTTL = 5 * time.Second

// Notice is a single transient message.
type Notice struct {
	ID      string
	Message string
	At      time.Time
}

// Center collects notices and hands them out exactly once.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending []Notice
}

// NewCenter creates a notification center. A non-positive ttl falls back to
// DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Push queues a message for the next render.
func (c *Center) Push(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, Notice{
		ID:      uuid.New().String(),
		Message: message,
		At:      c.now(),
	})
}

// Drain returns all queued notices that have not yet expired and clears the
// queue. A notice is handed out at most once.
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	live := make([]Notice, 0, len(c.pending))
	for _, n := range c.pending {
		if n.At.After(cutoff) {
			live = append(live, n)
		}
	}
	c.pending = nil
	return live
}

// TTL reports the configured auto-dismiss duration.
func (c *Center) TTL() time.Duration {
	return c.ttl
}
