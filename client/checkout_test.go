package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	pending  *PendingOrder
	created  []CreateOrderRequest
	appended []float64 // totals received by add-items
	delay    time.Duration
}

func (b *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/pending/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := map[string]any{"success": true}
		if b.pending != nil {
			out["order"] = b.pending
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(b.delay)
		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		b.mu.Lock()
		b.created = append(b.created, req)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"orderId": "ORD-1"})
	})
	mux.HandleFunc("PUT /orders/{id}/add-items", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Total float64 `json:"total"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.appended = append(b.appended, body.Total)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"orderId": "ORD-9", "total": body.Total})
	})
	return httptest.NewServer(mux)
}

func TestCheckoutCreatesWhenNoPendingOrder(t *testing.T) {
	b := &fakeBackend{}
	srv := b.server(t)
	defer srv.Close()

	sf := NewStorefront(New(srv.URL), 7, "5")
	sf.AddToCart(CartLine{ID: 1, Name: "Veg Thali", Price: 50}, 2)

	out, err := sf.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", out.OrderID)
	assert.False(t, out.Merged)

	require.Len(t, b.created, 1)
	assert.Equal(t, 100.0, b.created[0].Total)
	assert.Equal(t, "5", b.created[0].TableNumber)
}

func TestCheckoutMergesIntoPendingOrder(t *testing.T) {
	b := &fakeBackend{pending: &PendingOrder{OrderID: "ORD-9", Status: "pending", Total: 40}}
	srv := b.server(t)
	defer srv.Close()

	sf := NewStorefront(New(srv.URL), 7, "5")
	sf.AddToCart(CartLine{ID: 1, Price: 50}, 2)

	out, err := sf.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-9", out.OrderID, "merge must reuse the table's order id")
	assert.True(t, out.Merged)

	assert.Empty(t, b.created, "merge must not create a second order")
	require.Len(t, b.appended, 1)
	assert.Equal(t, 140.0, b.appended[0])
}

func TestCheckoutKeepsCartUntilBackToMenu(t *testing.T) {
	b := &fakeBackend{}
	srv := b.server(t)
	defer srv.Close()

	sf := NewStorefront(New(srv.URL), 7, "5")
	sf.AddToCart(CartLine{ID: 1, Price: 50}, 2)

	_, err := sf.Checkout(context.Background())
	require.NoError(t, err)

	// confirmation still shows what was ordered
	assert.Equal(t, 2, sf.Cart().TotalItems())
	require.NotNil(t, sf.Confirmation())

	sf.BackToMenu()
	assert.True(t, sf.Cart().IsEmpty())
	assert.Nil(t, sf.Confirmation())
}

func TestCheckoutRefusedWhileInFlight(t *testing.T) {
	b := &fakeBackend{delay: 150 * time.Millisecond}
	srv := b.server(t)
	defer srv.Close()

	sf := NewStorefront(New(srv.URL), 7, "5")
	sf.AddToCart(CartLine{ID: 1, Price: 10}, 1)

	var second atomic.Value
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := sf.Checkout(context.Background())
		assert.NoError(t, err)
	}()

	time.Sleep(50 * time.Millisecond) // first checkout is mid-request
	_, err := sf.Checkout(context.Background())
	second.Store(err)
	<-done

	assert.ErrorIs(t, second.Load().(error), ErrCheckoutInFlight)
	assert.Len(t, b.created, 1)
}

func TestCheckoutErrorLeavesCartUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	sf := NewStorefront(New(srv.URL), 7, "5")
	sf.AddToCart(CartLine{ID: 1, Price: 50}, 2)

	_, err := sf.Checkout(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, sf.Cart().TotalItems(), "failed checkout must keep the cart for retry")
	assert.Nil(t, sf.Confirmation())
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	sf := NewStorefront(New("http://127.0.0.1:0"), 7, "5")
	_, err := sf.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}
