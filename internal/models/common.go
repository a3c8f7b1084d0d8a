// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields. Records are hard-deleted, so there is no
// DeletedAt column.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every legal status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func (s Size) Valid() bool {
	for _, size := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// TaxonomyKind names one of the two taxonomy collections. Its value is the
// table name.
type TaxonomyKind string

const (
	TaxonomyCategories TaxonomyKind = "categories"
	TaxonomyStyles     TaxonomyKind = "styles"
)

func (k TaxonomyKind) Valid() bool {
	return k == TaxonomyCategories || k == TaxonomyStyles
}

// Collection names published on the realtime hub.
const (
	CollectionProducts   = "products"
	CollectionCategories = string(TaxonomyCategories)
	CollectionStyles     = string(TaxonomyStyles)
	CollectionOrders     = "orders"
)
