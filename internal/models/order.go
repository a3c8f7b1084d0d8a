// internal/models/order.go
package models

import (
	"gorm.io/datatypes"
)

type OrderLine struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type ShippingAddress struct {
	Description string `json:"description" gorm:"type:text"`
	Region      string `json:"region" gorm:"size:100"`
	County      string `json:"county" gorm:"size:100"`
}

// Order is created by the external checkout flow. Status is the only field
// changed from the admin side.
type Order struct {
	BaseModel
	CustomerName    string                         `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail   string                         `json:"customer_email" gorm:"size:255;not null;index"`
	Products        datatypes.JSONSlice[OrderLine] `json:"products" gorm:"type:jsonb"`
	TotalAmount     float64                        `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	ShippingAddress ShippingAddress                `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	Status          OrderStatus                    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
}
