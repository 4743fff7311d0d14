package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"pspcatalog/internal/psp/models"
)

// CatalogReader exposes one query per access path. Amount filters are inclusive
// range containment against [MinAmount, MaxAmount] and are applied by the store.
type CatalogReader interface {
	FindAll(ctx context.Context) ([]models.PspRecord, error)
	FindByAmount(ctx context.Context, amount int64) ([]models.PspRecord, error)
	FindByLanguage(ctx context.Context, language string) ([]models.PspRecord, error)
	FindByPaymentType(ctx context.Context, paymentType string) ([]models.PspRecord, error)
	FindByAmountAndLanguage(ctx context.Context, amount int64, language string) ([]models.PspRecord, error)
	FindByAmountAndPaymentType(ctx context.Context, amount int64, paymentType string) ([]models.PspRecord, error)
	FindByPaymentTypeAndLanguage(ctx context.Context, paymentType, language string) ([]models.PspRecord, error)
	FindByAmountPaymentTypeAndLanguage(ctx context.Context, amount int64, paymentType, language string) ([]models.PspRecord, error)
}

// CatalogWriter inserts or replaces a record by its composite key.
type CatalogWriter interface {
	Upsert(ctx context.Context, record *models.PspRecord) error
}

// FeedClient fetches one page of the upstream services feed.
type FeedClient interface {
	FetchPage(ctx context.Context, pageIndex, pageSize int) (*models.Page, error)
}
