// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// ErrConfirmationRequired is returned by a delete that was not confirmed.
var ErrConfirmationRequired = errors.New("deletion must be confirmed")

type ProductService struct {
	products repository.ProductRepository
	hub      *realtime.Hub
}

func NewProductService(products repository.ProductRepository, hub *realtime.Hub) *ProductService {
	return &ProductService{
		products: products,
		hub:      hub,
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// CreateProduct stores a product built by the form.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	s.hub.Publish(models.CollectionProducts, product.ID)
	return nil
}

// UpdateProduct stores the edited fields of a product built by the form.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("update product %s: %w", product.ID, err)
	}
	s.hub.Publish(models.CollectionProducts, product.ID)
	return nil
}

// CreateFromData runs data through a one-shot create form. A slug left empty
// is derived from the name.
func (s *ProductService) CreateFromData(ctx context.Context, data productform.FormData) (*models.Product, []utils.ValidationError, error) {
	form := productform.New()
	form.OpenCreate()

	slug := strings.TrimSpace(data.Slug)
	if err := form.Apply(data); err != nil {
		return nil, nil, err
	}
	if slug != "" {
		next := form.State().Data
		next.Slug = slug
		if err := form.Apply(next); err != nil {
			return nil, nil, err
		}
	}

	return form.Submit(ctx, s)
}

// UpdateFromData runs data through a one-shot edit form for product id.
func (s *ProductService) UpdateFromData(ctx context.Context, id uuid.UUID, data productform.FormData) (*models.Product, []utils.ValidationError, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	form := productform.New()
	form.OpenEdit(product)
	if err := form.Apply(data); err != nil {
		return nil, nil, err
	}
	return form.Submit(ctx, s)
}

// DeleteProduct removes a product for good. confirmed must be set.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	s.hub.Publish(models.CollectionProducts, id)
	return nil
}
