package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// InMemory is a small TTL cache. Expired values are dropped lazily on access.
type InMemory struct {
	storage map[string]entry

	mx sync.RWMutex
}

func NewInMemory() *InMemory {
	return &InMemory{
		storage: make(map[string]entry, 100), //nolint:mnd // reasonable default capacity
	}
}

func (c *InMemory) Get(key string) (string, bool) {
	c.mx.RLock()
	e, ok := c.storage[key]
	c.mx.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mx.Lock()
		delete(c.storage, key)
		c.mx.Unlock()
		return "", false
	}

	return e.value, true
}

func (c *InMemory) Set(key, value string, ttl time.Duration) {
	c.mx.Lock()
	defer c.mx.Unlock()

	now := time.Now()
	c.storage[key] = entry{value: value, expiresAt: now.Add(ttl)}

	for k, e := range c.storage {
		if now.After(e.expiresAt) {
			delete(c.storage, k)
		}
	}
}
