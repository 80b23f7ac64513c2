package services

import (
	"context"
	"time"

	"house-preview-backend/internal/models"
)

// CustomerStore persists customers. Lookups ignore soft-deleted rows and
// return models.ErrRecordNotFound when nothing matches.
type CustomerStore interface {
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
}

// PreviewStore persists house previews. Reads join the owning customer.
type PreviewStore interface {
	CreatePreview(ctx context.Context, p *models.HousePreview) error
	GetPreview(ctx context.Context, id int64) (*models.HousePreview, error)
	ListPreviews(ctx context.Context, filter models.PreviewFilter) ([]models.HousePreview, int64, error)
	ListCustomerPreviews(ctx context.Context, customerID int64) ([]models.HousePreview, error)
	UpdatePreviewStatus(ctx context.Context, id int64, status models.PreviewStatus) error
	MarkPreviewProcessed(ctx context.Context, id int64, processedBy *int64, at time.Time) error
	DeletePreview(ctx context.Context, id int64) error
}

// Store is the persistence surface the services need. WithTx runs fn
// against a store bound to a single transaction.
type Store interface {
	CustomerStore
	PreviewStore
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// BlobStore is durable file storage addressed by relative path.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}
