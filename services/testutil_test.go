package services

import (
	"path/filepath"
	"testing"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Hotel{}, &entity.DiningTable{},
		&entity.Category{}, &entity.Product{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	hotel    entity.Hotel
	table    entity.DiningTable
	thali    entity.Product // 50 per unit
	biryani  entity.Product // weight-based, 60 per 100g
	otherHot entity.Hotel
	otherPrd entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db}

	f.hotel = entity.Hotel{Name: "Sunrise Residency"}
	require.NoError(t, db.Create(&f.hotel).Error)
	f.table = entity.DiningTable{HotelID: f.hotel.ID, Number: "5", Seats: 4}
	require.NoError(t, db.Create(&f.table).Error)
	require.NoError(t, db.Create(&entity.DiningTable{HotelID: f.hotel.ID, Number: "4", Seats: 2}).Error)

	cat := entity.Category{HotelID: f.hotel.ID, Name: "Main Course"}
	require.NoError(t, db.Create(&cat).Error)

	f.thali = entity.Product{Name: "Veg Thali", Price: 50, CategoryID: cat.ID, HotelID: f.hotel.ID}
	require.NoError(t, db.Create(&f.thali).Error)

	f.biryani = entity.Product{
		Name: "Chicken Biryani Rice", WeightBased: true, PricePer100g: 60,
		CategoryID: cat.ID, HotelID: f.hotel.ID,
	}
	require.NoError(t, db.Create(&f.biryani).Error)

	f.otherHot = entity.Hotel{Name: "Elsewhere"}
	require.NoError(t, db.Create(&f.otherHot).Error)
	otherCat := entity.Category{HotelID: f.otherHot.ID, Name: "Snacks"}
	require.NoError(t, db.Create(&otherCat).Error)
	f.otherPrd = entity.Product{Name: "Samosa", Price: 30, CategoryID: otherCat.ID, HotelID: f.otherHot.ID}
	require.NoError(t, db.Create(&f.otherPrd).Error)

	return f
}

func (f *fixture) cartService() *CartService {
	return NewCartService(f.db,
		repository.NewCartRepository(f.db),
		repository.NewProductRepository(f.db))
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.db,
		repository.NewOrderRepository(f.db),
		repository.NewProductRepository(f.db),
		repository.NewTableRepository(f.db))
}
