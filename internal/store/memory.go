// internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clearlabel/transparency-backend/internal/apperrors"
	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

var (
	_ ProductStore = (*MemoryProductStore)(nil)
	_ UserStore    = (*MemoryUserStore)(nil)
)

// MemoryProductStore keeps products in a map. It backs tests and local
// development; semantics mirror the GORM store, last write wins.
type MemoryProductStore struct {
	mtx      sync.Mutex
	products map[uuid.UUID]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[uuid.UUID]models.Product)}
}

func (s *MemoryProductStore) Create(ctx context.Context, product *models.Product) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	s.products[product.ID] = cloneProduct(product)
	return nil
}

func (s *MemoryProductStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
	}
	out := cloneProduct(&product)
	return &out, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, product *models.Product) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	product.UpdatedAt = time.Now()
	s.products[product.ID] = cloneProduct(product)
	return nil
}

func (s *MemoryProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductStore) ListByUser(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var matches []models.Product
	for _, product := range s.products {
		if product.UserID == nil || *product.UserID != userID {
			continue
		}
		if params.Category != "" && product.Category != params.Category {
			continue
		}
		matches = append(matches, cloneProduct(&product))
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := int64(len(matches))
	start := (params.Page - 1) * params.Limit
	if start >= len(matches) {
		return []models.Product{}, total, nil
	}
	end := start + params.Limit
	if end > len(matches) {
		end = len(matches)
	}

	return matches[start:end], total, nil
}

func cloneProduct(p *models.Product) models.Product {
	out := *p
	out.Attributes = p.Attributes.Clone()
	out.PreviousAnswers = p.PreviousAnswers.Clone()
	out.Questions = append([]string(nil), p.Questions...)
	out.AskedQuestions = append([]string(nil), p.AskedQuestions...)
	if p.TransparencyScore != nil {
		score := *p.TransparencyScore
		out.TransparencyScore = &score
	}
	return out
}

// MemoryUserStore is the user-side counterpart of MemoryProductStore.
type MemoryUserStore struct {
	mtx   sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return &user, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
}

func (s *MemoryUserStore) Update(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}
