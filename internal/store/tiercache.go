package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gradeport/gradeport/internal/models"
)

// DefaultTierCacheTTL bounds how stale the public tier listing may get after
// an out-of-band catalog change.
const DefaultTierCacheTTL = time.Hour

// CachedTierStore caches tier listings in front of another TierStore. Writes
// pass through and invalidate the affected company so admin edits show up
// immediately.
type CachedTierStore struct {
	inner TierStore
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]tierCacheEntry
}

type tierCacheEntry struct {
	tiers   []models.ServiceTier
	expires time.Time
}

// allCompaniesKey caches the ListAll result alongside per-company entries.
const allCompaniesKey = "*"

// NewCachedTierStore wraps inner with a TTL cache. A zero ttl uses
// DefaultTierCacheTTL.
func NewCachedTierStore(inner TierStore, ttl time.Duration) *CachedTierStore {
	if ttl <= 0 {
		ttl = DefaultTierCacheTTL
	}
	return &CachedTierStore{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]tierCacheEntry{},
	}
}

func (c *CachedTierStore) ListByCompany(ctx context.Context, company string) ([]models.ServiceTier, error) {
	key := strings.ToLower(company)
	if tiers, ok := c.cached(key); ok {
		return tiers, nil
	}
	tiers, err := c.inner.ListByCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	c.storeEntry(key, tiers)
	return tiers, nil
}

func (c *CachedTierStore) ListAll(ctx context.Context) ([]models.ServiceTier, error) {
	if tiers, ok := c.cached(allCompaniesKey); ok {
		return tiers, nil
	}
	tiers, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.storeEntry(allCompaniesKey, tiers)
	return tiers, nil
}

func (c *CachedTierStore) Put(ctx context.Context, tier *models.ServiceTier) error {
	if err := c.inner.Put(ctx, tier); err != nil {
		return err
	}
	c.Invalidate(tier.Company)
	return nil
}

func (c *CachedTierStore) Delete(ctx context.Context, company, tierID string) error {
	if err := c.inner.Delete(ctx, company, tierID); err != nil {
		return err
	}
	c.Invalidate(company)
	return nil
}

// Invalidate drops the cached listing for one company plus the all-companies
// listing.
func (c *CachedTierStore) Invalidate(company string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, strings.ToLower(company))
	delete(c.entries, allCompaniesKey)
}

func (c *CachedTierStore) cached(key string) ([]models.ServiceTier, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	out := make([]models.ServiceTier, len(entry.tiers))
	copy(out, entry.tiers)
	return out, true
}

func (c *CachedTierStore) storeEntry(key string, tiers []models.ServiceTier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]models.ServiceTier, len(tiers))
	copy(stored, tiers)
	c.entries[key] = tierCacheEntry{tiers: stored, expires: c.now().Add(c.ttl)}
}
