package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"`

	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"price"`
	Total     float64 `json:"total"`

	// Set only for weight-based lines: the chosen quantity, its unit and
	// the per-100g reference the price was resolved from.
	Weight        float64 `json:"weight,omitempty"`
	WeightUnit    string  `json:"unit,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}
