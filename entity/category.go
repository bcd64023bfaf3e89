package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	HotelID uint   `gorm:"index:idx_hotel_category,unique" json:"hotelId"`
	Hotel   Hotel  `json:"-"`
	Name    string `gorm:"index:idx_hotel_category,unique" json:"name"`

	Products []Product `json:"-"`
}
