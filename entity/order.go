package entity

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	gorm.Model
	// Code is the public order id handed to diners, e.g. "ORD-3f9a21c4".
	Code string `gorm:"uniqueIndex;not null" json:"orderId"`

	HotelID uint  `gorm:"index:idx_order_table" json:"hotelId"`
	Hotel   Hotel `json:"-"`

	TableNumber string `gorm:"index:idx_order_table" json:"tableNumber"`

	// Zero when the order was placed without a signed-in account.
	UserID uint `json:"userId"`
	User   User `json:"-"`

	Status string  `gorm:"not null;default:pending;index" json:"status"`
	Total  float64 `json:"total"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cartItems"`
}
