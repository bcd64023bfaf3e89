package repository

import (
	"errors"
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// PendingForTable returns the open order for a (hotel, table) pair, or
// nil when the table has none.
func (r *OrderRepository) PendingForTable(hotelID uint, tableNumber string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("hotel_id = ? AND table_number = ? AND status = ?",
		hotelID, tableNumber, entity.OrderStatusPending).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByCode(code string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("code = ?", code).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// AppendItems adds lines to a pending order and sets the new total. The
// total update is conditional on the status so a merge racing a
// completion fails instead of reopening the order; reports whether the
// order was still pending.
func (r *OrderRepository) AppendItems(tx *gorm.DB, orderID uint, items []entity.OrderItem, total float64) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.OrderStatusPending).
		Update("total", total)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	for i := range items {
		items[i].OrderID = orderID
		if err := tx.Create(&items[i]).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}

// Complete flips pending → completed; reports whether a row changed so
// the caller can reject an already-completed order.
func (r *OrderRepository) Complete(code string) (bool, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("code = ? AND status = ?", code, entity.OrderStatusPending).
		Update("status", entity.OrderStatusCompleted)
	return res.RowsAffected > 0, res.Error
}

type OrderSummary struct {
	ID          uint      `json:"id"`
	Code        string    `json:"orderId"`
	TableNumber string    `json:"tableNumber"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListForHotel(hotelID uint, status string, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	q := r.DB.Model(&entity.Order{}).Where("hotel_id = ?", hotelID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []OrderSummary
	err := q.Select("id, code, table_number, status, total, created_at").
		Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Scan(&rows).Error
	return rows, total, err
}

type HotelOrderStats struct {
	PendingCount int64   `json:"pendingCount"`
	TodayCount   int64   `json:"todayCount"`
	TodayRevenue float64 `json:"todayRevenue"`
}

func (r *OrderRepository) StatsForHotel(hotelID uint) (*HotelOrderStats, error) {
	var st HotelOrderStats
	if err := r.DB.Model(&entity.Order{}).
		Where("hotel_id = ? AND status = ?", hotelID, entity.OrderStatusPending).
		Count(&st.PendingCount).Error; err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if err := r.DB.Model(&entity.Order{}).
		Where("hotel_id = ? AND created_at >= ?", hotelID, today).
		Count(&st.TodayCount).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("hotel_id = ? AND created_at >= ?", hotelID, today).
		Scan(&st.TodayRevenue).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
