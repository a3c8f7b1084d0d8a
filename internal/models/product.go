// internal/models/product.go
package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// MaxProductImages is the number of image slots a product carries.
const MaxProductImages = 4

type ProductImage struct {
	URL  string `json:"url"`
	Alt  string `json:"alt"`
	Hint string `json:"hint"`
}

type Color struct {
	Name string `json:"name" validate:"required"`
	Hex  string `json:"hex" validate:"required,hexcolor"`
}

type Product struct {
	BaseModel
	Name            string                           `json:"name" gorm:"size:255;not null"`
	Slug            string                           `json:"slug" gorm:"size:255;not null;index"`
	Description     string                           `json:"description" gorm:"type:text;not null"`
	Category        string                           `json:"category" gorm:"size:100;not null;index"`
	Style           *string                          `json:"style" gorm:"size:100"`
	Price           float64                          `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice   *float64                         `json:"original_price" gorm:"type:decimal(10,2)"`
	Images          datatypes.JSONSlice[ProductImage] `json:"images" gorm:"type:jsonb"`
	Sizes           pq.StringArray                   `json:"sizes" gorm:"type:text[]"`
	AvailableColors datatypes.JSONSlice[Color]        `json:"available_colors" gorm:"type:jsonb"`
	IsFeatured      bool                             `json:"is_featured" gorm:"not null;default:false;index"`
}
