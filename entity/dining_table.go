package entity

import (
	"gorm.io/gorm"
)

type DiningTable struct {
	gorm.Model
	HotelID uint   `gorm:"index:idx_hotel_table,unique" json:"hotelId"`
	Hotel   Hotel  `json:"-"`
	Number  string `gorm:"index:idx_hotel_table,unique" json:"number"`
	Seats   int    `json:"seats"`
}
