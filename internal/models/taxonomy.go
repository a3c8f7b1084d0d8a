// internal/models/taxonomy.go
package models

// Taxon is a category or a style. Both collections share this shape and are
// addressed by TaxonomyKind.
type Taxon struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null"`
}

// Default taxonomy inserted by the seeding pass when absent.
var (
	DefaultCategories = []string{"Women", "Men", "Unisex", "Bags"}
	DefaultStyles     = []string{"Casual", "Formal", "Streetwear", "Sport", "Vintage"}
)

func DefaultTaxonomy(kind TaxonomyKind) []string {
	switch kind {
	case TaxonomyCategories:
		return DefaultCategories
	case TaxonomyStyles:
		return DefaultStyles
	default:
		return nil
	}
}
