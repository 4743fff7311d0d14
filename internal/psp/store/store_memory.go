package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"pspcatalog/internal/psp/models"
)

// InMemoryStore keeps the catalog in a map keyed by the composite PSP key.
// Results are ordered by key so every access path is deterministic.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[models.Key]models.PspRecord
}

// NewInMemory creates an empty in-memory catalog.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[models.Key]models.PspRecord),
	}
}

// Upsert inserts the record or replaces the one with the same key.
// A nil record is a no-op.
func (s *InMemoryStore) Upsert(_ context.Context, record *models.PspRecord) error {
	if record == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Key] = *record
	return nil
}

// Len returns the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]models.PspRecord, error) {
	return s.filter(func(models.PspRecord) bool { return true }), nil
}

func (s *InMemoryStore) FindByAmount(_ context.Context, amount int64) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Covers(amount)
	}), nil
}

func (s *InMemoryStore) FindByLanguage(_ context.Context, language string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return string(r.Key.Language) == language
	}), nil
}

func (s *InMemoryStore) FindByPaymentType(_ context.Context, paymentType string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Key.PaymentType == paymentType
	}), nil
}

func (s *InMemoryStore) FindByAmountAndLanguage(_ context.Context, amount int64, language string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Covers(amount) && string(r.Key.Language) == language
	}), nil
}

func (s *InMemoryStore) FindByAmountAndPaymentType(_ context.Context, amount int64, paymentType string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Covers(amount) && r.Key.PaymentType == paymentType
	}), nil
}

func (s *InMemoryStore) FindByPaymentTypeAndLanguage(_ context.Context, paymentType, language string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Key.PaymentType == paymentType && string(r.Key.Language) == language
	}), nil
}

func (s *InMemoryStore) FindByAmountPaymentTypeAndLanguage(_ context.Context, amount int64, paymentType, language string) ([]models.PspRecord, error) {
	return s.filter(func(r models.PspRecord) bool {
		return r.Covers(amount) && r.Key.PaymentType == paymentType && string(r.Key.Language) == language
	}), nil
}

// filter must be called without holding s.mu.
func (s *InMemoryStore) filter(keep func(models.PspRecord) bool) []models.PspRecord {
	s.mu.RLock()
	out := make([]models.PspRecord, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.PspRecord) int {
		return compareKeys(a.Key, b.Key)
	})
	return out
}

func compareKeys(a, b models.Key) int {
	return cmp.Or(
		cmp.Compare(a.PspCode, b.PspCode),
		cmp.Compare(a.PaymentType, b.PaymentType),
		cmp.Compare(a.Channel, b.Channel),
		cmp.Compare(a.Language, b.Language),
	)
}
