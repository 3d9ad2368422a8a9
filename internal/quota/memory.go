package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter implements Counter with a lock-guarded in-memory map.
// Suitable for single-instance deployments; counts are lost on restart.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	count       int64
	windowStart time.Time
}

// NewMemoryCounter creates an in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Incr increments the counter for key in the current window.
// The mutex makes increment-and-read atomic across concurrent callers.
func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	windowStart := c.now().UTC().Truncate(window)

	entry, ok := c.entries[key]
	if !ok || entry.windowStart.Before(windowStart) {
		entry = &memoryEntry{windowStart: windowStart}
		c.entries[key] = entry
	}
	entry.count++

	return entry.count, windowStart.Add(window), nil
}
