package entity

import (
	"gorm.io/gorm"
)

// Hotel is the tenant boundary: categories, products, tables and orders
// all hang off one hotel.
type Hotel struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	Address string `json:"address"`

	Categories []Category    `json:"-"`
	Products   []Product     `json:"-"`
	Tables     []DiningTable `json:"-"`
	Orders     []Order       `json:"-"`
}
