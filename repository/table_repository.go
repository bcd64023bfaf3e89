package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type TableRepository struct{ DB *gorm.DB }

func NewTableRepository(db *gorm.DB) *TableRepository { return &TableRepository{DB: db} }

func (r *TableRepository) List(hotelID uint) ([]entity.DiningTable, error) {
	var ts []entity.DiningTable
	err := r.DB.Where("hotel_id = ?", hotelID).Order("id").Find(&ts).Error
	return ts, err
}

func (r *TableRepository) FindByNumber(hotelID uint, number string) (*entity.DiningTable, error) {
	var t entity.DiningTable
	if err := r.DB.Where("hotel_id = ? AND number = ?", hotelID, number).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) Create(t *entity.DiningTable) error { return r.DB.Create(t).Error }
func (r *TableRepository) Update(t *entity.DiningTable) error { return r.DB.Save(t).Error }

func (r *TableRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.DiningTable{}, id).Error
}
