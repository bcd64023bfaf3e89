package repository

import (
	"strings"

	"backend/entity"

	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

// GET /get_food_items → one page of these, grouped by category
type ProductRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"desc"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"imageUrl"`
	Category     string  `json:"category"`
	WeightBased  bool    `json:"weightBased"`
	PricePer100g float64 `json:"pricePer100g,omitempty"`
}

// Search returns one page of products for a hotel, filtered by category
// and a case-insensitive name substring. Ordered by category then id so
// pages group cleanly under category headers.
func (r *ProductRepository) Search(hotelID uint, category, search string, page, limit int) ([]ProductRow, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Table("products p").
		Select(`p.id, p.name, p.price, p.description, p.rating, p.image_url,
			c.name AS category, p.weight_based, p.price_per100g`).
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("p.hotel_id = ? AND p.deleted_at IS NULL", hotelID)

	if category != "" && category != "All" {
		q = q.Where("c.name = ?", category)
	}
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var rows []ProductRow
	err := q.Order("c.name, p.id").Limit(limit).Offset(offset).Scan(&rows).Error
	return rows, err
}

func (r *ProductRepository) CategoryNames(hotelID uint) ([]string, error) {
	var names []string
	err := r.DB.Model(&entity.Category{}).
		Where("hotel_id = ?", hotelID).
		Order("id").
		Pluck("name", &names).Error
	return names, err
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Count(hotelID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Product{}).Where("hotel_id = ?", hotelID).Count(&n).Error
	return n, err
}

// ---------------- admin CRUD ----------------

func (r *ProductRepository) Create(p *entity.Product) error { return r.DB.Create(p).Error }
func (r *ProductRepository) Update(p *entity.Product) error { return r.DB.Save(p).Error }

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Product{}, id).Error
}

func (r *ProductRepository) GetOrCreateCategory(hotelID uint, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.DB.Where(entity.Category{HotelID: hotelID, Name: name}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProductRepository) DeleteCategory(hotelID uint, name string) error {
	return r.DB.Where("hotel_id = ? AND name = ?", hotelID, name).
		Delete(&entity.Category{}).Error
}
