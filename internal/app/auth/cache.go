package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"homestead/internal/app/ports"
)

const (
	DefaultCredentialCacheSize = 1024
	DefaultCredentialCacheTTL  = 5 * time.Minute
)

// CredentialCache keeps recently used credential records so key checks on
// hot farms skip the repository. Keys are still hashed and compared per call.
type CredentialCache struct {
	lru *expirable.LRU[string, ports.FarmCredentialRecord]
}

func NewCredentialCache(size int, ttl time.Duration) *CredentialCache {
	if size <= 0 {
		size = DefaultCredentialCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCredentialCacheTTL
	}
	return &CredentialCache{
		lru: expirable.NewLRU[string, ports.FarmCredentialRecord](size, nil, ttl),
	}
}

func (c *CredentialCache) Get(farmID string) (ports.FarmCredentialRecord, bool) {
	if c == nil {
		return ports.FarmCredentialRecord{}, false
	}
	return c.lru.Get(farmID)
}

func (c *CredentialCache) Set(cred ports.FarmCredentialRecord) {
	if c == nil {
		return
	}
	c.lru.Add(cred.FarmID, cred)
}

func (c *CredentialCache) Invalidate(farmID string) {
	if c == nil {
		return
	}
	c.lru.Remove(farmID)
}

func (c *CredentialCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
