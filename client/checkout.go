package client

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
)

var (
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrEmptyCart        = errors.New("cart is empty")
)

// CheckoutOutcome carries what the confirmation view needs: the order
// id, whether the cart merged into an already-open table order, and the
// lines that were submitted.
type CheckoutOutcome struct {
	OrderID string
	Merged  bool
	Items   []CartLine
	Total   float64
}

// Storefront owns the ordering session for one table: the cart, the
// checkout flow and the confirmation state.
type Storefront struct {
	api         *Client
	HotelID     uint
	TableNumber string

	mu           sync.Mutex
	cart         Cart
	confirmation *CheckoutOutcome
	inFlight     atomic.Bool
}

func NewStorefront(api *Client, hotelID uint, tableNumber string) *Storefront {
	return &Storefront{api: api, HotelID: hotelID, TableNumber: tableNumber}
}

func (s *Storefront) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Storefront) AddToCart(line CartLine, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Add(line, qty)
}

func (s *Storefront) Increment(id uint) { s.update(func(c Cart) Cart { return c.Increment(id) }) }
func (s *Storefront) Decrement(id uint) { s.update(func(c Cart) Cart { return c.Decrement(id) }) }
func (s *Storefront) Remove(id uint)    { s.update(func(c Cart) Cart { return c.Remove(id) }) }
func (s *Storefront) ClearCart()        { s.update(func(c Cart) Cart { return c.Clear() }) }

func (s *Storefront) update(action func(Cart) Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = action(s.cart)
}

// Checkout reconciles the cart with the table's server-side order:
// merge into the pending order when one exists, otherwise create one.
// The cart is left intact either way — the confirmation view still
// shows it — and is cleared only by BackToMenu. A second checkout is
// refused while one is in flight; any error leaves the cart untouched
// for a retry.
func (s *Storefront) Checkout(ctx context.Context) (*CheckoutOutcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	cart := s.cart
	s.mu.Unlock()
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	pending, err := s.api.PendingOrder(ctx, s.HotelID, s.TableNumber)
	if err != nil {
		return nil, err
	}

	items := cart.Lines()
	total := cart.TotalPrice()

	var out *CheckoutOutcome
	if pending != nil {
		merged := math.Round((pending.Total+total)*100) / 100
		if err := s.api.AddOrderItems(ctx, pending.OrderID, items, merged); err != nil {
			return nil, err
		}
		out = &CheckoutOutcome{OrderID: pending.OrderID, Merged: true, Items: items, Total: total}
	} else {
		orderID, err := s.api.CreateOrder(ctx, CreateOrderRequest{
			HotelID:     s.HotelID,
			CartItems:   items,
			Total:       total,
			TableNumber: s.TableNumber,
		})
		if err != nil {
			return nil, err
		}
		out = &CheckoutOutcome{OrderID: orderID, Merged: false, Items: items, Total: total}
	}

	s.mu.Lock()
	s.confirmation = out
	s.mu.Unlock()
	return out, nil
}

func (s *Storefront) Confirmation() *CheckoutOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmation
}

// BackToMenu leaves the confirmation view; only now is the cart
// cleared.
func (s *Storefront) BackToMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmation != nil {
		s.cart = s.cart.Clear()
		s.confirmation = nil
	}
}
