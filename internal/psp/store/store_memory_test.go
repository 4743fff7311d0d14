package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pspcatalog/internal/psp/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func newRecord(code, paymentType string, lang models.Language, minAmount, maxAmount int64) *models.PspRecord {
	return &models.PspRecord{
		Key: models.Key{
			PspCode:     code,
			PaymentType: paymentType,
			Channel:     "CHANNEL_0",
			Language:    lang,
		},
		Status:    models.StatusEnabled,
		Name:      code + " business",
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		FeeAmount: 100,
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *InMemoryStoreSuite) seed(records ...*models.PspRecord) {
	for _, r := range records {
		s.Require().NoError(s.store.Upsert(s.ctx, r))
	}
}

func codes(records []models.PspRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Key.PspCode+"/"+r.Key.PaymentType+"/"+string(r.Key.Language))
	}
	return out
}

func (s *InMemoryStoreSuite) TestUpsert() {
	s.Run("nil record is a no-op", func() {
		s.NoError(s.store.Upsert(s.ctx, nil))
		s.Equal(0, s.store.Len())
	})

	s.Run("same key twice keeps one record", func() {
		rec := newRecord("PSP_A", "PO", models.LanguageIT, 0, 100)
		s.seed(rec, rec)
		s.Equal(1, s.store.Len())
	})

	s.Run("later upsert overwrites attributes", func() {
		updated := newRecord("PSP_A", "PO", models.LanguageIT, 0, 500)
		updated.Status = models.StatusDisabled
		s.seed(updated)

		all, err := s.store.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 1)
		s.Equal(models.StatusDisabled, all[0].Status)
		s.Equal(int64(500), all[0].MaxAmount)
	})

	s.Run("different channel is a different key", func() {
		other := newRecord("PSP_A", "PO", models.LanguageIT, 0, 100)
		other.Key.Channel = "CHANNEL_1"
		s.seed(other)
		s.Equal(2, s.store.Len())
	})
}

func (s *InMemoryStoreSuite) TestAmountRangeIsInclusive() {
	s.seed(newRecord("PSP_A", "PO", models.LanguageIT, 0, 100))

	for _, amount := range []int64{0, 100} {
		got, err := s.store.FindByAmount(s.ctx, amount)
		s.Require().NoError(err)
		s.Len(got, 1, "amount %d", amount)
	}

	got, err := s.store.FindByAmount(s.ctx, 101)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *InMemoryStoreSuite) TestAccessPaths() {
	s.seed(
		newRecord("PSP_A", "PO", models.LanguageIT, 0, 100),
		newRecord("PSP_B", "PO", models.LanguageEN, 50, 1000),
		newRecord("PSP_C", "CP", models.LanguageIT, 200, 5000),
		newRecord("PSP_D", "CP", models.LanguageEN, 0, 10),
	)

	s.Run("find all is ordered by key", func() {
		got, err := s.store.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"PSP_A/PO/IT", "PSP_B/PO/EN", "PSP_C/CP/IT", "PSP_D/CP/EN"}, codes(got))
	})

	s.Run("by amount", func() {
		got, err := s.store.FindByAmount(s.ctx, 75)
		s.Require().NoError(err)
		s.Equal([]string{"PSP_A/PO/IT", "PSP_B/PO/EN"}, codes(got))
	})

	s.Run("by language", func() {
		got, err := s.store.FindByLanguage(s.ctx, "IT")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_A/PO/IT", "PSP_C/CP/IT"}, codes(got))
	})

	s.Run("by payment type", func() {
		got, err := s.store.FindByPaymentType(s.ctx, "CP")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_C/CP/IT", "PSP_D/CP/EN"}, codes(got))
	})

	s.Run("by amount and language", func() {
		got, err := s.store.FindByAmountAndLanguage(s.ctx, 300, "IT")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_C/CP/IT"}, codes(got))
	})

	s.Run("by amount and payment type", func() {
		got, err := s.store.FindByAmountAndPaymentType(s.ctx, 5, "CP")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_D/CP/EN"}, codes(got))
	})

	s.Run("by payment type and language", func() {
		got, err := s.store.FindByPaymentTypeAndLanguage(s.ctx, "PO", "EN")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_B/PO/EN"}, codes(got))
	})

	s.Run("by amount, payment type and language", func() {
		got, err := s.store.FindByAmountPaymentTypeAndLanguage(s.ctx, 100, "PO", "IT")
		s.Require().NoError(err)
		s.Equal([]string{"PSP_A/PO/IT"}, codes(got))

		got, err = s.store.FindByAmountPaymentTypeAndLanguage(s.ctx, 101, "PO", "IT")
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *InMemoryStoreSuite) TestConcurrentUpsertsAndReads() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec := newRecord("PSP_SAME", "PO", models.LanguageIT, 0, int64(i))
			s.NoError(s.store.Upsert(s.ctx, rec))
		}()
		go func() {
			defer wg.Done()
			_, err := s.store.FindByAmount(s.ctx, 10)
			s.NoError(err)
		}()
	}
	wg.Wait()
	s.Equal(1, s.store.Len())
}
