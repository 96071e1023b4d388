package state

import "sync"

// PlaylistCache holds the last successfully fetched playlist names. It has no
// TTL; only the next successful fetch replaces it.
type PlaylistCache struct {
	mu     sync.Mutex
	names  []string
	filled bool
}

// Get returns the cached names and whether a fetch has succeeded before.
func (c *PlaylistCache) Get() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled {
		return nil, false
	}
	return append([]string(nil), c.names...), true
}

// Put replaces the cached names.
func (c *PlaylistCache) Put(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append([]string(nil), names...)
	c.filled = true
}
