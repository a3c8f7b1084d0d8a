// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-admin/internal/models"
)

var ErrNotFound = errors.New("record not found")

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update writes every editable field and updated_at. created_at is never
	// touched.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaxonomyRepository interface {
	List(ctx context.Context, kind models.TaxonomyKind) ([]models.Taxon, error)
	Create(ctx context.Context, kind models.TaxonomyKind, taxon *models.Taxon) error
	Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error
}

type OrderRepository interface {
	// ListRecent returns orders newest first.
	ListRecent(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles the gorm-backed implementations.
type Repositories struct {
	Products ProductRepository
	Taxonomy TaxonomyRepository
	Orders   OrderRepository
	Users    UserRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Products: NewProductRepository(db),
		Taxonomy: NewTaxonomyRepository(db),
		Orders:   NewOrderRepository(db),
		Users:    NewUserRepository(db),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func requireAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
