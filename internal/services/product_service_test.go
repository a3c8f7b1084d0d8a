package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/repository"
)

func formData(name string) productform.FormData {
	return productform.FormData{
		Name:        name,
		Description: "Soft and durable",
		Category:    "Bags",
		Price:       25,
		ImageURL1:   "https://cdn.shop.test/1.jpg",
	}
}

func TestProductService_CreateFromDataDerivesSlug(t *testing.T) {
	f := newFixture(t)
	sub := f.hub.Subscribe(models.CollectionProducts)
	defer sub.Close()

	product, fieldErrs, err := f.products.CreateFromData(ctx(), formData("Men & Women's Bags!"))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "men-and-womens-bags", product.Slug)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Len(t, sub.C, 1)
}

func TestProductService_CreateFromDataKeepsExplicitSlug(t *testing.T) {
	f := newFixture(t)
	data := formData("Canvas Tote")
	data.Slug = "tote-classic"

	product, _, err := f.products.CreateFromData(ctx(), data)
	require.NoError(t, err)
	assert.Equal(t, "tote-classic", product.Slug)
}

func TestProductService_CreateFromDataValidation(t *testing.T) {
	f := newFixture(t)
	data := formData("")

	product, fieldErrs, err := f.products.CreateFromData(ctx(), data)
	require.NoError(t, err)
	assert.Nil(t, product)
	assert.NotEmpty(t, fieldErrs)
	assert.Equal(t, 0, f.store.Writes)
}

func TestProductService_UpdateFromDataKeepsSlug(t *testing.T) {
	f := newFixture(t)
	created, _, err := f.products.CreateFromData(ctx(), formData("Canvas Tote"))
	require.NoError(t, err)

	data := productform.FromProduct(created)
	data.Name = "Canvas Tote XL"
	updated, fieldErrs, err := f.products.UpdateFromData(ctx(), created.ID, data)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "canvas-tote", updated.Slug)

	stored, err := f.products.GetProduct(ctx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Canvas Tote XL", stored.Name)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
}

func TestProductService_DeleteRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	created, _, err := f.products.CreateFromData(ctx(), formData("Canvas Tote"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.DeleteProduct(ctx(), created.ID, false), ErrConfirmationRequired)
	require.NoError(t, f.products.DeleteProduct(ctx(), created.ID, true))

	_, err = f.products.GetProduct(ctx(), created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.products.DeleteProduct(ctx(), created.ID, true), repository.ErrNotFound)
}
