package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gradeport/gradeport/internal/models"
)

// MemorySubmissionStore keeps submissions in process memory. It backs
// development and tests through the same interface as the DynamoDB store.
type MemorySubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]models.Submission
}

// NewMemorySubmissionStore returns an empty in-memory submission store.
func NewMemorySubmissionStore() *MemorySubmissionStore {
	return &MemorySubmissionStore{submissions: map[string]models.Submission{}}
}

func (m *MemorySubmissionStore) Put(_ context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[sub.SubmissionID] = *sub
	return nil
}

func (m *MemorySubmissionStore) Get(_ context.Context, id string) (*models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (m *MemorySubmissionStore) List(_ context.Context, companies []string, limit int, cursor string) (*SubmissionPage, error) {
	m.mu.RLock()
	matched := make([]models.Submission, 0, len(m.submissions))
	for _, sub := range m.submissions {
		if companyMatches(sub.GradingCompany, companies) {
			matched = append(matched, sub)
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SubmittedAt.Equal(matched[j].SubmittedAt) {
			return matched[i].SubmissionID > matched[j].SubmissionID
		}
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	start := 0
	if cursor != "" {
		for i, sub := range matched {
			if sub.SubmissionID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start >= len(matched) {
		return &SubmissionPage{Submissions: []models.Submission{}}, nil
	}

	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	page := &SubmissionPage{Submissions: matched[start:end]}
	if end < len(matched) {
		page.Cursor = matched[end-1].SubmissionID
	}
	return page, nil
}

func (m *MemorySubmissionStore) SearchByEmail(_ context.Context, email string, companies []string) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	var out []models.Submission
	for _, sub := range m.submissions {
		if strings.ToLower(sub.Email) == email && companyMatches(sub.GradingCompany, companies) {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func companyMatches(company string, companies []string) bool {
	if companies == nil {
		return true
	}
	for _, c := range companies {
		if strings.EqualFold(company, c) {
			return true
		}
	}
	return false
}

// MemoryTierStore keeps the service tier catalog in process memory.
type MemoryTierStore struct {
	mu    sync.RWMutex
	tiers map[string]models.ServiceTier
}

// NewMemoryTierStore returns an empty in-memory tier store.
func NewMemoryTierStore() *MemoryTierStore {
	return &MemoryTierStore{tiers: map[string]models.ServiceTier{}}
}

func tierKey(company, tierID string) string {
	return strings.ToLower(company) + "/" + strings.ToLower(tierID)
}

func (m *MemoryTierStore) ListByCompany(_ context.Context, company string) ([]models.ServiceTier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ServiceTier
	for _, tier := range m.tiers {
		if strings.EqualFold(tier.Company, company) {
			out = append(out, tier)
		}
	}
	sortTiers(out)
	return out, nil
}

func (m *MemoryTierStore) ListAll(_ context.Context) ([]models.ServiceTier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ServiceTier, 0, len(m.tiers))
	for _, tier := range m.tiers {
		out = append(out, tier)
	}
	sortTiers(out)
	return out, nil
}

func (m *MemoryTierStore) Put(_ context.Context, tier *models.ServiceTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers[tierKey(tier.Company, tier.TierID)] = *tier
	return nil
}

func (m *MemoryTierStore) Delete(_ context.Context, company, tierID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tierKey(company, tierID)
	if _, ok := m.tiers[key]; !ok {
		return ErrNotFound
	}
	delete(m.tiers, key)
	return nil
}

func sortTiers(tiers []models.ServiceTier) {
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].Company != tiers[j].Company {
			return tiers[i].Company < tiers[j].Company
		}
		return tiers[i].Order < tiers[j].Order
	})
}

// MemoryAuditLog keeps audit records in process memory.
type MemoryAuditLog struct {
	mu     sync.Mutex
	audits []models.TierAuditRecord
}

// NewMemoryAuditLog returns an empty in-memory audit log.
func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{}
}

func (m *MemoryAuditLog) Append(_ context.Context, rec *models.TierAuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, *rec)
	return nil
}

// Records returns a copy of the audit entries, oldest first.
func (m *MemoryAuditLog) Records() []models.TierAuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.TierAuditRecord, len(m.audits))
	copy(out, m.audits)
	return out
}
