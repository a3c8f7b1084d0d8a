// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/repository"
)

// Store implements every repository interface over maps. Setting Err makes
// every call fail with it; ListErr fails only the listing of one collection.
type Store struct {
	mu       sync.Mutex
	products []models.Product
	taxa     map[models.TaxonomyKind][]models.Taxon
	orders   []models.Order
	users    []models.User

	Err     error
	ListErr map[string]error
	Writes  int
}

func NewStore() *Store {
	return &Store{
		taxa:    make(map[models.TaxonomyKind][]models.Taxon),
		ListErr: make(map[string]error),
	}
}

func (s *Store) listErr(collection string) error {
	if s.Err != nil {
		return s.Err
	}
	return s.ListErr[collection]
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Products: Products{s},
		Taxonomy: Taxonomy{s},
		Orders:   Orders{s},
		Users:    Users{s},
	}
}

func stamp(base *models.BaseModel) {
	now := time.Now()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = now
	}
}

type Products struct{ s *Store }

func (r Products) List(ctx context.Context) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.listErr(models.CollectionProducts); err != nil {
		return nil, err
	}
	out := append([]models.Product(nil), r.s.products...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r Products) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			p := r.s.products[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r Products) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stamp(&product.BaseModel)
	r.s.products = append(r.s.products, *product)
	r.s.Writes++
	return nil
}

func (r Products) Update(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.products {
		if r.s.products[i].ID == product.ID {
			updated := *product
			updated.CreatedAt = r.s.products[i].CreatedAt
			r.s.products[i] = updated
			r.s.Writes++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r Products) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			r.s.Writes++
			return nil
		}
	}
	return repository.ErrNotFound
}

type Taxonomy struct{ s *Store }

func (r Taxonomy) List(ctx context.Context, kind models.TaxonomyKind) ([]models.Taxon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.listErr(string(kind)); err != nil {
		return nil, err
	}
	return append([]models.Taxon(nil), r.s.taxa[kind]...), nil
}

func (r Taxonomy) Create(ctx context.Context, kind models.TaxonomyKind, taxon *models.Taxon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stamp(&taxon.BaseModel)
	r.s.taxa[kind] = append(r.s.taxa[kind], *taxon)
	r.s.Writes++
	return nil
}

func (r Taxonomy) Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	taxa := r.s.taxa[kind]
	for i := range taxa {
		if taxa[i].ID == id {
			r.s.taxa[kind] = append(taxa[:i], taxa[i+1:]...)
			r.s.Writes++
			return nil
		}
	}
	return repository.ErrNotFound
}

type Orders struct{ s *Store }

func (r Orders) ListRecent(ctx context.Context) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.listErr(models.CollectionOrders); err != nil {
		return nil, err
	}
	out := append([]models.Order(nil), r.s.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r Orders) Create(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stamp(&order.BaseModel)
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	r.s.orders = append(r.s.orders, *order)
	r.s.Writes++
	return nil
}

func (r Orders) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders[i].Status = status
			r.s.orders[i].UpdatedAt = time.Now()
			r.s.Writes++
			return nil
		}
	}
	return repository.ErrNotFound
}

type Users struct{ s *Store }

func (r Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Email, strings.TrimSpace(email)) {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r Users) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r Users) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Email, user.Email) {
			return errors.New("duplicate email")
		}
	}
	stamp(&user.BaseModel)
	r.s.users = append(r.s.users, *user)
	r.s.Writes++
	return nil
}

func (r Users) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			now := time.Now()
			r.s.users[i].LastLoginAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

// SeedTaxa inserts names directly, bypassing the write counter.
func (s *Store) SeedTaxa(kind models.TaxonomyKind, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		t := models.Taxon{Name: name}
		stamp(&t.BaseModel)
		s.taxa[kind] = append(s.taxa[kind], t)
	}
}

// SeedOrders inserts orders directly, bypassing the write counter.
func (s *Store) SeedOrders(orders ...models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		stamp(&o.BaseModel)
		s.orders = append(s.orders, o)
	}
}
