package services

import (
	"errors"
	"math"
	"strings"
	"sync"

	"backend/entity"
	"backend/pkg/pricing"
	"backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyOrder     = errors.New("cartItems is required")
	ErrTotalMismatch  = errors.New("total does not match cart items")
	ErrPendingExists  = errors.New("table already has a pending order")
	ErrOrderCompleted = errors.New("order is already completed")
)

// OrderNotifier receives order lifecycle events; the ws hub implements
// it. May be nil.
type OrderNotifier interface {
	PublishOrder(hotelID uint, event string, order *entity.Order)
}

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	TableRepo   *repository.TableRepository
	Notifier    OrderNotifier

	// serializes the pending-order check against order creation, so two
	// concurrent first checkouts for one table yield one order
	mu sync.Mutex
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, pr *repository.ProductRepository, tr *repository.TableRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, ProductRepo: pr, TableRepo: tr}
}

// CheckoutLine mirrors the storefront's resolved cart line: price is
// the unit price (or, for weight lines, the price resolved for the
// chosen weight) and the line amount is price*qty.
type CheckoutLine struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Qty           int     `json:"qty"`
	Weight        float64 `json:"weight,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

type PlaceOrderReq struct {
	UserID      uint           `json:"userId"`
	HotelID     uint           `json:"hotelId" binding:"required"`
	TableNumber string         `json:"tableNumber" binding:"required"`
	CartItems   []CheckoutLine `json:"cartItems"`
	Total       float64        `json:"total"`
}

func (s *OrderService) Pending(hotelID uint, tableNumber string) (*entity.Order, error) {
	return s.Repo.PendingForTable(hotelID, tableNumber)
}

// Create places a new pending order for a table. It refuses when the
// table already has one; callers are expected to merge instead.
func (s *OrderService) Create(req *PlaceOrderReq) (*entity.Order, error) {
	items, subtotal, err := s.buildItems(req.HotelID, req.CartItems)
	if err != nil {
		return nil, err
	}
	if req.Total != 0 && !moneyEqual(req.Total, subtotal) {
		return nil, ErrTotalMismatch
	}
	if _, err := s.TableRepo.FindByNumber(req.HotelID, req.TableNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("table not found")
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.Repo.PendingForTable(req.HotelID, req.TableNumber)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrPendingExists
	}

	order := &entity.Order{
		Code:        newOrderCode(),
		HotelID:     req.HotelID,
		TableNumber: req.TableNumber,
		UserID:      req.UserID,
		Status:      entity.OrderStatusPending,
		Total:       subtotal,
		Items:       items,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.CreateOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.notify(order.HotelID, "created", order)
	return order, nil
}

// AddItems merges additional lines into an existing pending order.
// total, when non-zero, is the expected grand total after the merge.
func (s *OrderService) AddItems(code string, lines []CheckoutLine, total float64) (*entity.Order, error) {
	o, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderStatusPending {
		return nil, ErrOrderCompleted
	}

	items, subtotal, err := s.buildItems(o.HotelID, lines)
	if err != nil {
		return nil, err
	}
	newTotal := round2(o.Total + subtotal)
	if total != 0 && !moneyEqual(total, newTotal) {
		return nil, ErrTotalMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.AppendItems(tx, o.ID, items, newTotal)
		if err != nil {
			return err
		}
		if !ok {
			// the order was completed between the status check above
			// and this write
			return ErrOrderCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err = s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	s.notify(o.HotelID, "merged", o)
	return o, nil
}

func (s *OrderService) Complete(code string) (*entity.Order, error) {
	done, err := s.Repo.Complete(code)
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrOrderCompleted
	}
	s.notify(o.HotelID, "completed", o)
	return o, nil
}

func (s *OrderService) ListForHotel(hotelID uint, status string, page, limit int) ([]repository.OrderSummary, int64, error) {
	return s.Repo.ListForHotel(hotelID, status, page, limit)
}

// buildItems validates checkout lines against the catalog and converts
// them to order items. Weight lines are re-resolved server-side so a
// client cannot submit a price the clamped weight doesn't produce.
func (s *OrderService) buildItems(hotelID uint, lines []CheckoutLine) ([]entity.OrderItem, float64, error) {
	if len(lines) == 0 {
		return nil, 0, ErrEmptyOrder
	}

	items := make([]entity.OrderItem, 0, len(lines))
	var subtotal float64
	for _, l := range lines {
		if l.Qty < 1 {
			return nil, 0, errors.New("qty must be at least 1")
		}
		p, err := s.ProductRepo.FindByID(l.ID)
		if err != nil {
			return nil, 0, errors.New("unknown product in cart")
		}
		if p.HotelID != hotelID {
			return nil, 0, errors.New("product not in this hotel")
		}

		price := l.Price
		if p.WeightBased {
			if !pricing.ValidUnit(l.Unit) {
				return nil, 0, pricing.ErrInvalidUnit
			}
			if pricing.Clamp(l.Weight, l.Unit) != l.Weight {
				return nil, 0, errors.New("weight quantity out of range")
			}
			resolved, err := pricing.Resolve(p.PricePer100g, l.Weight, l.Unit)
			if err != nil {
				return nil, 0, err
			}
			if !moneyEqual(price, resolved) {
				return nil, 0, ErrTotalMismatch
			}
			price = resolved
		} else if !moneyEqual(price, p.Price) {
			return nil, 0, ErrTotalMismatch
		}

		lineTotal := round2(price * float64(l.Qty))
		subtotal = round2(subtotal + lineTotal)
		items = append(items, entity.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Qty:        l.Qty,
			UnitPrice:  price,
			Total:      lineTotal,
			Weight:     l.Weight,
			WeightUnit: l.Unit,
		})
	}
	return items, subtotal, nil
}

func (s *OrderService) notify(hotelID uint, event string, o *entity.Order) {
	if s.Notifier != nil {
		s.Notifier.PublishOrder(hotelID, event, o)
	}
}

func newOrderCode() string {
	return "ORD-" + strings.Split(uuid.NewString(), "-")[0]
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
