package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"backend/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderHub pushes order lifecycle events to admin dashboards, replacing
// interval polling. Subscriptions are scoped per hotel and die with the
// connection.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // hotelID -> set of clients
	broadcast  chan orderEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	Conn    *websocket.Conn
	HotelID uint
}

type orderEvent struct {
	HotelID uint          `json:"hotelId"`
	Event   string        `json:"event"` // created | merged | completed
	Order   *entity.Order `json:"order"`
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan orderEvent, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.HotelID] == nil {
				h.clients[sub.HotelID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.HotelID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.HotelID][sub.Conn]; ok {
				delete(h.clients[sub.HotelID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.HotelID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.HotelID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishOrder implements services.OrderNotifier.
func (h *OrderHub) PublishOrder(hotelID uint, event string, order *entity.Order) {
	h.broadcast <- orderEvent{HotelID: hotelID, Event: event, Order: order}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/orders/:hotelId (admin token via ?token=)
func (h *OrderHub) Serve(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid hotel id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, HotelID: uint(hotelID)}
	h.register <- sub

	// drain until the client goes away, then unsubscribe
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
