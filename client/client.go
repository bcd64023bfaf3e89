// Package client is the storefront session: a typed API client plus
// the cart, listing and checkout state machines the ordering UI drives.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// every request gets this budget; a slow backend surfaces as an error,
// never a hang
const requestBudget = 10 * time.Second

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: requestBudget},
	}
}

type Product struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Desc         string  `json:"desc"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"imageUrl"`
	Category     string  `json:"category"`
	WeightBased  bool    `json:"weightBased"`
	PricePer100g float64 `json:"pricePer100g"`
}

type ListingQuery struct {
	HotelID  uint
	Category string
	Search   string
	Page     int
}

func (c *Client) Categories(ctx context.Context, hotelID uint) ([]string, error) {
	var out struct {
		Success    bool     `json:"success"`
		Categories []string `json:"categories"`
	}
	path := fmt.Sprintf("/categories/%d", hotelID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) FoodItems(ctx context.Context, q ListingQuery) ([]Product, error) {
	v := url.Values{}
	v.Set("hotel_id", strconv.FormatUint(uint64(q.HotelID), 10))
	v.Set("category", q.Category)
	v.Set("search", q.Search)
	v.Set("page", strconv.Itoa(q.Page))

	var rows []Product
	if err := c.do(ctx, http.MethodGet, "/get_food_items?"+v.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type PendingOrder struct {
	OrderID string  `json:"orderId"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
	Items   []struct {
		Name  string  `json:"name"`
		Qty   int     `json:"qty"`
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	} `json:"cartItems"`
}

// PendingOrder returns the open order for a table, or nil when the
// table has none.
func (c *Client) PendingOrder(ctx context.Context, hotelID uint, tableNumber string) (*PendingOrder, error) {
	var out struct {
		Success bool          `json:"success"`
		Order   *PendingOrder `json:"order"`
	}
	path := fmt.Sprintf("/orders/pending/%d/%s", hotelID, url.PathEscape(tableNumber))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

type CreateOrderRequest struct {
	UserID      uint       `json:"userId,omitempty"`
	HotelID     uint       `json:"hotelId"`
	CartItems   []CartLine `json:"cartItems"`
	Total       float64    `json:"total"`
	TableNumber string     `json:"tableNumber"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error) {
	var out struct {
		OrderID string `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

func (c *Client) AddOrderItems(ctx context.Context, orderID string, items []CartLine, total float64) error {
	body := struct {
		CartItems []CartLine `json:"cartItems"`
		Total     float64    `json:"total"`
	}{CartItems: items, Total: total}
	path := fmt.Sprintf("/orders/%s/add-items", url.PathEscape(orderID))
	return c.do(ctx, http.MethodPut, path, body, nil)
}

type authResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login authenticates and keeps the token on the client for subsequent
// calls; the returned Session is what callers persist.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return c.sessionFrom(&out), nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return c.sessionFrom(&out), nil
}

func (c *Client) sessionFrom(out *authResponse) *Session {
	c.Token = out.Token
	return &Session{
		User: SessionUser{
			ID:    out.User.ID,
			Email: out.User.Email,
			Name:  out.User.Name,
			Role:  out.User.Role,
		},
		Token:           out.Token,
		IsAuthenticated: true,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = res.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, e.Error)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}
