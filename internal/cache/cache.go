// Package cache provides a small generic TTL/LRU cache used for dashboard
// reads, plus a manager that owns periodic cleanup of expired entries.
package cache

import "time"

// Cache defines a generic cache interface.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that support expiry cleanup.
type Cleaner interface {
	CleanExpired() int
}

// Manager runs periodic cleanup for a set of caches until stopped.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
}

func NewManager(caches ...Cleaner) *Manager {
	return &Manager{
		caches:      caches,
		stopCleanup: make(chan struct{}),
	}
}

// Start launches the cleanup loop; call Stop to end it.
func (m *Manager) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, c := range m.caches {
					c.CleanExpired()
				}
			case <-m.stopCleanup:
				return
			}
		}
	}()
}

func (m *Manager) Stop() {
	close(m.stopCleanup)
}
