package catalog

import "sync"

// Library hands out the current catalog generation and swaps in new ones
// atomically. Readers hold a *Catalog snapshot for the duration of a request;
// a reload never changes a generation already handed out.
type Library struct {
	mu      sync.RWMutex
	current *Catalog
}

// NewLibrary starts with the given generation.
func NewLibrary(c *Catalog) *Library {
	return &Library{current: c}
}

// Current returns the live generation.
func (l *Library) Current() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Replace swaps in a freshly loaded generation.
func (l *Library) Replace(c *Catalog) {
	l.mu.Lock()
	l.current = c
	l.mu.Unlock()
}
