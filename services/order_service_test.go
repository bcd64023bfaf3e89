package services

import (
	"strings"
	"testing"

	"backend/entity"
	"backend/pkg/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func thaliLine(f *fixture, qty int) CheckoutLine {
	return CheckoutLine{ID: f.thali.ID, Name: f.thali.Name, Price: 50, Qty: qty}
}

type capturedEvent struct {
	hotelID uint
	event   string
	code    string
}

type captureNotifier struct{ events []capturedEvent }

func (n *captureNotifier) PublishOrder(hotelID uint, event string, o *entity.Order) {
	n.events = append(n.events, capturedEvent{hotelID, event, o.Code})
}

func TestCheckoutCreateComputesTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Create(&PlaceOrderReq{
		HotelID:     f.hotel.ID,
		TableNumber: "5",
		CartItems:   []CheckoutLine{thaliLine(f, 2)},
		Total:       100,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(o.Code, "ORD-"))
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, 100.0, o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Qty)
}

func TestCheckoutCreateRejectsTotalMismatch(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	_, err := svc.Create(&PlaceOrderReq{
		HotelID:     f.hotel.ID,
		TableNumber: "5",
		CartItems:   []CheckoutLine{thaliLine(f, 2)},
		Total:       90,
	})
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestCheckoutCreateRejectsSecondPendingForTable(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	first, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	require.NoError(t, err)

	_, err = svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	assert.ErrorIs(t, err, ErrPendingExists)

	// still exactly one pending order for the table
	pending, err := svc.Pending(f.hotel.ID, "5")
	require.NoError(t, err)
	assert.Equal(t, first.Code, pending.Code)
}

func TestCheckoutCreateValidations(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	_, err := svc.Create(&PlaceOrderReq{HotelID: f.hotel.ID, TableNumber: "5"})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "99",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	assert.ErrorContains(t, err, "table not found")

	bad := thaliLine(f, 0)
	_, err = svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{bad},
	})
	assert.ErrorContains(t, err, "qty")

	cross := CheckoutLine{ID: f.otherPrd.ID, Price: 30, Qty: 1}
	_, err = svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{cross},
	})
	assert.ErrorContains(t, err, "not in this hotel")
}

func TestCheckoutCreateRevalidatesWeightLines(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	line := CheckoutLine{
		ID: f.biryani.ID, Name: f.biryani.Name, Qty: 1,
		Weight: 500, Unit: pricing.UnitGram,
		Price: 300, // 500g at 60/100g
	}
	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{line},
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, o.Total)

	// a tampered price must not pass
	line.Price = 30
	_, err = svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "4",
		CartItems: []CheckoutLine{line},
	})
	assert.Error(t, err)
}

func TestAddItemsMergesIntoPendingOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 2)},
	})
	require.NoError(t, err)

	merged, err := svc.AddItems(o.Code, []CheckoutLine{thaliLine(f, 1)}, 150)
	require.NoError(t, err)
	assert.Equal(t, o.Code, merged.Code, "merge keeps the same order id")
	assert.Equal(t, 150.0, merged.Total)
	assert.Len(t, merged.Items, 2)
}

func TestAddItemsRejectsCompletedOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	require.NoError(t, err)

	_, err = svc.Complete(o.Code)
	require.NoError(t, err)

	_, err = svc.AddItems(o.Code, []CheckoutLine{thaliLine(f, 1)}, 0)
	assert.ErrorIs(t, err, ErrOrderCompleted)
}

func TestAddItemsRacingCompleteLeavesOrderClosed(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	require.NoError(t, err)

	// the admin closes the table after a merge passed its status check
	// but before its write commits
	_, err = svc.Complete(o.Code)
	require.NoError(t, err)

	items, _, err := svc.buildItems(o.HotelID, []CheckoutLine{thaliLine(f, 1)})
	require.NoError(t, err)
	err = svc.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := svc.Repo.AppendItems(tx, o.ID, items, o.Total+50)
		require.NoError(t, err)
		if !ok {
			return ErrOrderCompleted
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrOrderCompleted)

	got, err := svc.Repo.GetByCode(o.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	assert.Equal(t, o.Total, got.Total, "a closed order keeps its total")
	assert.Len(t, got.Items, 1)
}

func TestCompleteIsNotRepeatable(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	require.NoError(t, err)

	done, err := svc.Complete(o.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, done.Status)

	_, err = svc.Complete(o.Code)
	assert.ErrorIs(t, err, ErrOrderCompleted)

	// table is free again
	pending, err := svc.Pending(f.hotel.ID, "5")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestPendingReturnsNilForFreeTable(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	o, err := svc.Pending(f.hotel.ID, "5")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderEventsReachNotifier(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()
	n := &captureNotifier{}
	svc.Notifier = n

	o, err := svc.Create(&PlaceOrderReq{
		HotelID: f.hotel.ID, TableNumber: "5",
		CartItems: []CheckoutLine{thaliLine(f, 1)},
	})
	require.NoError(t, err)
	_, err = svc.AddItems(o.Code, []CheckoutLine{thaliLine(f, 1)}, 0)
	require.NoError(t, err)
	_, err = svc.Complete(o.Code)
	require.NoError(t, err)

	require.Len(t, n.events, 3)
	assert.Equal(t, "created", n.events[0].event)
	assert.Equal(t, "merged", n.events[1].event)
	assert.Equal(t, "completed", n.events[2].event)
	assert.Equal(t, f.hotel.ID, n.events[0].hotelID)
}
