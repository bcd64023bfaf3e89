package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"imageUrl"`

	// Weight-based products are priced per 100g; PricePer100g holds the
	// reference and lines must carry a resolved weight.
	WeightBased  bool    `json:"weightBased"`
	PricePer100g float64 `gorm:"column:price_per100g" json:"pricePer100g"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`

	HotelID uint  `json:"hotelId"`
	Hotel   Hotel `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
