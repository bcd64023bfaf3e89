package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/pricing"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ProductRepo: pr}
}

type AddToCartIn struct {
	HotelID   uint `json:"hotelId" binding:"required"`
	ProductID uint `json:"productId" binding:"required"`
	Qty       int  `json:"qty"`

	// Required for weight-based products, rejected otherwise.
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

func (s *CartService) Get(userID uint) (*entity.Cart, float64, error) {
	c, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, 0, err
	}
	// subtotal is always derived from the lines, never stored
	var subtotal float64
	for _, it := range c.Items {
		subtotal += it.Total
	}
	return c, subtotal, nil
}

func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	c, err := s.CartRepo.GetOrCreateCart(userID, in.HotelID)
	if err != nil {
		return err
	}
	if c.HotelID != 0 && c.HotelID != in.HotelID {
		return errors.New("cart has items from another hotel")
	}
	if c.HotelID == 0 {
		c.HotelID = in.HotelID
		if err := s.CartRepo.DB.Save(c).Error; err != nil {
			return err
		}
	}

	p, err := s.ProductRepo.FindByID(in.ProductID)
	if err != nil {
		return err
	}
	if p.HotelID != in.HotelID {
		return errors.New("product not in this hotel")
	}

	line := &entity.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Qty:       in.Qty,
	}

	if p.WeightBased {
		if !pricing.ValidUnit(in.Unit) {
			return pricing.ErrInvalidUnit
		}
		if pricing.Clamp(in.Weight, in.Unit) != in.Weight {
			return errors.New("weight quantity out of range")
		}
		price, err := pricing.Resolve(p.PricePer100g, in.Weight, in.Unit)
		if err != nil {
			return err
		}
		line.UnitPrice = price
		line.OriginalPrice = p.PricePer100g
		line.Weight = in.Weight
		line.WeightUnit = in.Unit
	} else {
		if in.Unit != "" || in.Weight != 0 {
			return errors.New("product is not weight-based")
		}
		line.UnitPrice = p.Price
	}
	line.Total = line.UnitPrice * float64(line.Qty)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertItem(tx, c.ID, line)
	})
}

func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, userID, itemID, qty)
	})
}

// Increment adjusts a line by +1.
func (s *CartService) Increment(userID, itemID uint) error {
	return s.adjust(userID, itemID, +1)
}

// Decrement adjusts a line by -1; a line at qty 1 is removed rather
// than kept at zero.
func (s *CartService) Decrement(userID, itemID uint) error {
	return s.adjust(userID, itemID, -1)
}

func (s *CartService) adjust(userID, itemID uint, delta int) error {
	it, err := s.CartRepo.GetItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.UpdateQty(userID, itemID, it.Qty+delta)
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, userID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, userID)
	})
}
