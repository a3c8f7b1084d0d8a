// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
)

// Feed is one live collection. Loading stays true until a load succeeds.
type Feed[T any] struct {
	Loading bool `json:"loading"`
	Items   []T  `json:"items"`
}

func loadingFeed[T any]() Feed[T] {
	return Feed[T]{Loading: true, Items: []T{}}
}

type Dashboard struct {
	Products   Feed[models.Product] `json:"products"`
	Categories Feed[models.Taxon]   `json:"categories"`
	Styles     Feed[models.Taxon]   `json:"styles"`
	Orders     Feed[models.Order]   `json:"orders"`
	SalesCount map[string]int       `json:"sales_count"`
}

// DashboardService assembles the catalog and orders view.
type DashboardService struct {
	products *ProductService
	taxonomy *TaxonomyService
	orders   *OrderService

	seedMu sync.Mutex
	seeded bool
}

func NewDashboardService(products *ProductService, taxonomy *TaxonomyService, orders *OrderService) *DashboardService {
	return &DashboardService{
		products: products,
		taxonomy: taxonomy,
		orders:   orders,
	}
}

// Load reads the four feeds independently. A feed that fails is logged and
// left loading. The first load in which both taxonomy feeds succeed seeds
// the default categories and styles.
func (s *DashboardService) Load(ctx context.Context) *Dashboard {
	d := &Dashboard{
		Products:   loadingFeed[models.Product](),
		Categories: loadingFeed[models.Taxon](),
		Styles:     loadingFeed[models.Taxon](),
		Orders:     loadingFeed[models.Order](),
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		if items, err := s.products.ListProducts(ctx); s.loaded(models.CollectionProducts, err) {
			d.Products = Feed[models.Product]{Items: items}
		}
	}()
	go func() {
		defer wg.Done()
		if items, err := s.taxonomy.List(ctx, models.TaxonomyCategories); s.loaded(models.CollectionCategories, err) {
			d.Categories = Feed[models.Taxon]{Items: items}
		}
	}()
	go func() {
		defer wg.Done()
		if items, err := s.taxonomy.List(ctx, models.TaxonomyStyles); s.loaded(models.CollectionStyles, err) {
			d.Styles = Feed[models.Taxon]{Items: items}
		}
	}()
	go func() {
		defer wg.Done()
		if items, err := s.orders.ListOrders(ctx); s.loaded(models.CollectionOrders, err) {
			d.Orders = Feed[models.Order]{Items: items}
		}
	}()
	wg.Wait()

	if !d.Categories.Loading && !d.Styles.Loading {
		s.seedOnce(ctx, d)
	}

	d.SalesCount = SalesTally(d.Orders.Items)
	return d
}

func (s *DashboardService) loaded(feed string, err error) bool {
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"feed":  feed,
			"error": err,
		}).Error("Failed to load dashboard feed")
		return false
	}
	return true
}

func (s *DashboardService) seedOnce(ctx context.Context, d *Dashboard) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return
	}

	categories, err := s.taxonomy.Seed(ctx, models.TaxonomyCategories, d.Categories.Items)
	if err != nil {
		logrus.WithError(err).Error("Failed to seed categories")
		return
	}
	styles, err := s.taxonomy.Seed(ctx, models.TaxonomyStyles, d.Styles.Items)
	if err != nil {
		logrus.WithError(err).Error("Failed to seed styles")
		return
	}
	s.seeded = true

	d.Categories.Items = append(d.Categories.Items, categories...)
	SortTaxa(d.Categories.Items)
	d.Styles.Items = append(d.Styles.Items, styles...)
	SortTaxa(d.Styles.Items)
}

// LoadFeed reloads a single collection for a live update. The orders feed
// carries the sales tally with it.
func (s *DashboardService) LoadFeed(ctx context.Context, collection string) (interface{}, error) {
	switch collection {
	case models.CollectionProducts:
		items, err := s.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return Feed[models.Product]{Items: items}, nil
	case models.CollectionCategories, models.CollectionStyles:
		items, err := s.taxonomy.List(ctx, models.TaxonomyKind(collection))
		if err != nil {
			return nil, err
		}
		return Feed[models.Taxon]{Items: items}, nil
	case models.CollectionOrders:
		items, err := s.orders.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		return struct {
			Feed[models.Order]
			SalesCount map[string]int `json:"sales_count"`
		}{Feed[models.Order]{Items: items}, SalesTally(items)}, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
