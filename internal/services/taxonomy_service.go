// internal/services/taxonomy_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/utils"
)

var ErrUnknownTaxonomy = errors.New("unknown taxonomy")

type TaxonRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type TaxonomyService struct {
	repo repository.TaxonomyRepository
	hub  *realtime.Hub
}

func NewTaxonomyService(repo repository.TaxonomyRepository, hub *realtime.Hub) *TaxonomyService {
	return &TaxonomyService{repo: repo, hub: hub}
}

// SortTaxa orders by name ignoring case, then by bytes.
func SortTaxa(taxa []models.Taxon) {
	sort.SliceStable(taxa, func(i, j int) bool {
		a, b := strings.ToLower(taxa[i].Name), strings.ToLower(taxa[j].Name)
		if a != b {
			return a < b
		}
		return taxa[i].Name < taxa[j].Name
	})
}

// List returns the collection sorted for display.
func (s *TaxonomyService) List(ctx context.Context, kind models.TaxonomyKind) ([]models.Taxon, error) {
	if !kind.Valid() {
		return nil, ErrUnknownTaxonomy
	}
	taxa, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	SortTaxa(taxa)
	return taxa, nil
}

// Add inserts a name as given. Duplicates are not checked.
func (s *TaxonomyService) Add(ctx context.Context, kind models.TaxonomyKind, req *TaxonRequest) (*models.Taxon, error) {
	if !kind.Valid() {
		return nil, ErrUnknownTaxonomy
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	taxon := &models.Taxon{Name: req.Name}
	if err := s.repo.Create(ctx, kind, taxon); err != nil {
		return nil, fmt.Errorf("create %s entry: %w", kind, err)
	}
	s.hub.Publish(string(kind), taxon.ID)
	return taxon, nil
}

func (s *TaxonomyService) Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error {
	if !kind.Valid() {
		return ErrUnknownTaxonomy
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("delete %s entry %s: %w", kind, id, err)
	}
	s.hub.Publish(string(kind), id)
	return nil
}

// MissingDefaults returns the default names of kind that have no
// case-insensitive match in existing.
func MissingDefaults(kind models.TaxonomyKind, existing []models.Taxon) []string {
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[strings.ToLower(strings.TrimSpace(t.Name))] = true
	}

	var missing []string
	for _, name := range models.DefaultTaxonomy(kind) {
		key := strings.ToLower(name)
		if !have[key] {
			have[key] = true
			missing = append(missing, name)
		}
	}
	return missing
}

// Seed inserts the defaults of kind absent from existing. It never deletes
// or renames, so running it again is a no-op.
func (s *TaxonomyService) Seed(ctx context.Context, kind models.TaxonomyKind, existing []models.Taxon) ([]models.Taxon, error) {
	var added []models.Taxon
	for _, name := range MissingDefaults(kind, existing) {
		taxon := models.Taxon{Name: name}
		if err := s.repo.Create(ctx, kind, &taxon); err != nil {
			return added, fmt.Errorf("seed %s %q: %w", kind, name, err)
		}
		added = append(added, taxon)
	}

	if len(added) > 0 {
		logrus.WithFields(logrus.Fields{
			"taxonomy": kind,
			"added":    len(added),
		}).Info("Default taxonomy seeded")
		s.hub.Publish(string(kind), nil)
	}
	return added, nil
}

// SeedDefaults lists both collections and seeds each.
func (s *TaxonomyService) SeedDefaults(ctx context.Context) error {
	for _, kind := range []models.TaxonomyKind{models.TaxonomyCategories, models.TaxonomyStyles} {
		existing, err := s.repo.List(ctx, kind)
		if err != nil {
			return fmt.Errorf("list %s: %w", kind, err)
		}
		if _, err := s.Seed(ctx, kind, existing); err != nil {
			return err
		}
	}
	return nil
}
