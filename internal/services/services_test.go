package services

import (
	"context"
	"testing"

	"github.com/javajoker/catalog-admin/internal/config"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository/repositorytest"
)

const testAdmin = "owner@shop.test"

func testConfig() *config.Config {
	return &config.Config{
		JWT:   config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Admin: config.AdminConfig{Email: testAdmin, Password: "s3cret-pass"},
	}
}

type fixture struct {
	store     *repositorytest.Store
	hub       *realtime.Hub
	auth      *AuthService
	products  *ProductService
	taxonomy  *TaxonomyService
	orders    *OrderService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositorytest.NewStore()
	repos := store.Repositories()
	hub := realtime.NewHub(64)

	f := &fixture{store: store, hub: hub}
	f.auth = NewAuthService(repos.Users, testConfig())
	f.products = NewProductService(repos.Products, hub)
	f.taxonomy = NewTaxonomyService(repos.Taxonomy, hub)
	f.orders = NewOrderService(repos.Orders, hub)
	f.dashboard = NewDashboardService(f.products, f.taxonomy, f.orders)
	return f
}

func ctx() context.Context {
	return context.Background()
}
