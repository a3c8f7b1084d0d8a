// internal/repository/taxonomy_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-admin/internal/models"
)

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) table(ctx context.Context, kind models.TaxonomyKind) *gorm.DB {
	return r.db.WithContext(ctx).Table(string(kind))
}

func (r *taxonomyRepository) List(ctx context.Context, kind models.TaxonomyKind) ([]models.Taxon, error) {
	var taxa []models.Taxon
	if err := r.table(ctx, kind).Order("created_at ASC").Find(&taxa).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return taxa, nil
}

func (r *taxonomyRepository) Create(ctx context.Context, kind models.TaxonomyKind, taxon *models.Taxon) error {
	if err := r.table(ctx, kind).Create(taxon).Error; err != nil {
		return fmt.Errorf("failed to create %s entry: %w", kind, err)
	}
	return nil
}

func (r *taxonomyRepository) Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error {
	result := r.table(ctx, kind).Where("id = ?", id).Delete(&models.Taxon{})
	if err := requireAffected(result); err != nil {
		return fmt.Errorf("failed to delete %s entry: %w", kind, err)
	}
	return nil
}
