package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// Products on this list are sold per 100g instead of per unit.
var weightBasedNames = []string{
	"Chicken Biryani Rice",
	"Mutton Curry Cut",
	"Paneer Tikka",
	"Fried Chicken",
	"Masala Peanuts",
}

func isWeightBased(name string) bool {
	for _, n := range weightBasedNames {
		if n == name {
			return true
		}
	}
	return false
}

// SeedDemo loads one hotel with tables, categories and a small menu so
// the storefront works out of the box. Rerunnable.
func SeedDemo() error {
	db := DB()

	var hotel entity.Hotel
	if err := db.Where(entity.Hotel{Name: "Sunrise Residency"}).
		FirstOrCreate(&hotel, entity.Hotel{Name: "Sunrise Residency", Address: "MG Road"}).Error; err != nil {
		return err
	}

	for _, n := range []string{"1", "2", "3", "4", "5"} {
		t := entity.DiningTable{HotelID: hotel.ID, Number: n, Seats: 4}
		if err := db.Where(entity.DiningTable{HotelID: hotel.ID, Number: n}).
			FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}

	menu := []struct {
		category string
		name     string
		desc     string
		price    float64
		rating   float64
	}{
		{"Starters", "Paneer Tikka", "char-grilled cottage cheese", 45, 4.4},
		{"Starters", "Masala Peanuts", "crunchy spiced peanuts", 20, 4.0},
		{"Main Course", "Chicken Biryani Rice", "dum-cooked, sold by weight", 60, 4.6},
		{"Main Course", "Mutton Curry Cut", "fresh cut, sold by weight", 110, 4.5},
		{"Main Course", "Veg Thali", "full meal with dessert", 180, 4.2},
		{"Snacks", "Fried Chicken", "crispy, sold by weight", 55, 4.3},
		{"Snacks", "Samosa", "two pieces with chutney", 30, 4.1},
		{"Beverages", "Masala Chai", "cutting chai", 15, 4.7},
		{"Beverages", "Cold Coffee", "with ice cream", 80, 4.4},
	}

	for _, m := range menu {
		var cat entity.Category
		if err := db.Where(entity.Category{HotelID: hotel.ID, Name: m.category}).
			FirstOrCreate(&cat).Error; err != nil {
			return err
		}

		var count int64
		db.Model(&entity.Product{}).
			Where("hotel_id = ? AND name = ?", hotel.ID, m.name).Count(&count)
		if count > 0 {
			continue
		}

		p := entity.Product{
			Name:        m.name,
			Description: m.desc,
			Rating:      m.rating,
			CategoryID:  cat.ID,
			HotelID:     hotel.ID,
		}
		if isWeightBased(m.name) {
			p.WeightBased = true
			p.PricePer100g = m.price
		} else {
			p.Price = m.price
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
