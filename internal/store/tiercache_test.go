package store

import (
	"context"
	"testing"
	"time"

	"github.com/gradeport/gradeport/internal/models"
)

// countingTierStore counts reads so tests can tell cache hits from misses.
type countingTierStore struct {
	*MemoryTierStore
	listByCompany int
	listAll       int
}

func (c *countingTierStore) ListByCompany(ctx context.Context, company string) ([]models.ServiceTier, error) {
	c.listByCompany++
	return c.MemoryTierStore.ListByCompany(ctx, company)
}

func (c *countingTierStore) ListAll(ctx context.Context) ([]models.ServiceTier, error) {
	c.listAll++
	return c.MemoryTierStore.ListAll(ctx)
}

func seedTiers(t *testing.T, s TierStore) {
	t.Helper()
	ctx := context.Background()
	for _, tier := range []models.ServiceTier{
		{Company: "psa", TierID: "express", Name: "Express", Order: 1},
		{Company: "bgs", TierID: "standard", Name: "Standard", Order: 1},
	} {
		tier := tier
		if err := s.Put(ctx, &tier); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
}

func TestCachedTierStoreServesFromCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingTierStore{MemoryTierStore: NewMemoryTierStore()}
	seedTiers(t, inner)
	cache := NewCachedTierStore(inner, time.Hour)

	for i := 0; i < 3; i++ {
		tiers, err := cache.ListByCompany(ctx, "psa")
		if err != nil {
			t.Fatalf("ListByCompany: %v", err)
		}
		if len(tiers) != 1 {
			t.Fatalf("ListByCompany = %d tiers, want 1", len(tiers))
		}
	}
	if inner.listByCompany != 1 {
		t.Errorf("inner reads = %d, want 1", inner.listByCompany)
	}
}

func TestCachedTierStoreExpires(t *testing.T) {
	ctx := context.Background()
	inner := &countingTierStore{MemoryTierStore: NewMemoryTierStore()}
	seedTiers(t, inner)
	cache := NewCachedTierStore(inner, time.Hour)

	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	if _, err := cache.ListByCompany(ctx, "psa"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	clock = clock.Add(30 * time.Minute)
	if _, err := cache.ListByCompany(ctx, "psa"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if inner.listByCompany != 1 {
		t.Fatalf("inner reads before expiry = %d, want 1", inner.listByCompany)
	}

	clock = clock.Add(31 * time.Minute)
	if _, err := cache.ListByCompany(ctx, "psa"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if inner.listByCompany != 2 {
		t.Errorf("inner reads after expiry = %d, want 2", inner.listByCompany)
	}
}

func TestCachedTierStoreWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	inner := &countingTierStore{MemoryTierStore: NewMemoryTierStore()}
	seedTiers(t, inner)
	cache := NewCachedTierStore(inner, time.Hour)

	if _, err := cache.ListByCompany(ctx, "psa"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if _, err := cache.ListAll(ctx); err != nil {
		t.Fatalf("ListAll: %v", err)
	}

	update := &models.ServiceTier{Company: "psa", TierID: "walkthrough", Name: "Walkthrough", Order: 0}
	if err := cache.Put(ctx, update); err != nil {
		t.Fatalf("Put: %v", err)
	}

	tiers, err := cache.ListByCompany(ctx, "psa")
	if err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("ListByCompany after Put = %d tiers, want 2", len(tiers))
	}
	if inner.listByCompany != 2 {
		t.Errorf("inner company reads = %d, want 2 (cache invalidated)", inner.listByCompany)
	}

	if _, err := cache.ListAll(ctx); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if inner.listAll != 2 {
		t.Errorf("inner all reads = %d, want 2 (all-companies entry invalidated)", inner.listAll)
	}
}

func TestCachedTierStoreInvalidateIsScoped(t *testing.T) {
	ctx := context.Background()
	inner := &countingTierStore{MemoryTierStore: NewMemoryTierStore()}
	seedTiers(t, inner)
	cache := NewCachedTierStore(inner, time.Hour)

	if _, err := cache.ListByCompany(ctx, "psa"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if _, err := cache.ListByCompany(ctx, "bgs"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}

	cache.Invalidate("psa")

	if _, err := cache.ListByCompany(ctx, "bgs"); err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if inner.listByCompany != 2 {
		t.Errorf("inner reads = %d, want 2 (bgs entry survives psa invalidation)", inner.listByCompany)
	}
}
