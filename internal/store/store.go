// internal/store/store.go
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

// ProductStore is the record-store boundary the pipeline talks to. The
// production implementation is GORM/Postgres; tests swap in an in-memory
// fake. Single-record semantics, last write wins.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
