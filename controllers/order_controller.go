package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// GET /orders/pending/:hotelId/:tableNumber
func (h *OrderController) Pending(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid hotel id")
		return
	}

	o, err := h.Svc.Pending(uint(hotelID), c.Param("tableNumber"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

// POST /orders
func (h *OrderController) Create(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// the session user wins over whatever the body claims
	if uid := utils.CurrentUserID(c); uid != 0 {
		req.UserID = uid
	}

	o, err := h.Svc.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPendingExists):
			resp.Conflict(c, err.Error())
		case errors.Is(err, services.ErrTotalMismatch), errors.Is(err, services.ErrEmptyOrder):
			resp.BadRequest(c, err.Error())
		default:
			resp.BadRequest(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderId": o.Code})
}

// PUT /orders/:orderId/add-items
func (h *OrderController) AddItems(c *gin.Context) {
	var body struct {
		CartItems []services.CheckoutLine `json:"cartItems" binding:"required"`
		Total     float64                 `json:"total"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := h.Svc.AddItems(c.Param("orderId"), body.CartItems, body.Total)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrOrderCompleted):
			resp.Conflict(c, err.Error())
		default:
			resp.BadRequest(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": o.Code, "total": o.Total})
}

// PUT /orders/:orderId/complete (staff)
func (h *OrderController) Complete(c *gin.Context) {
	o, err := h.Svc.Complete(c.Param("orderId"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrOrderCompleted):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, o)
}

// GET /admin/orders?hotelId=&status=&page=
func (h *OrderController) ListForHotel(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Query("hotelId"), 10, 32)
	if err != nil || hotelID == 0 {
		resp.BadRequest(c, "invalid hotelId")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	rows, total, err := h.Svc.ListForHotel(uint(hotelID), c.Query("status"), page, 50)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": rows, "total": total})
}
