package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"`

	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"price"`
	Total     float64 `json:"total"`

	Weight     float64 `json:"weight,omitempty"`
	WeightUnit string  `json:"unit,omitempty"`
}
