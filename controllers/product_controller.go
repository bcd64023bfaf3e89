package controllers

import (
	"net/http"
	"strconv"

	"backend/pkg/resp"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct{ Svc *services.ProductService }

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Svc: s}
}

// GET /categories/:hotelId
func (h *ProductController) Categories(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid hotel id")
		return
	}

	names, err := h.Svc.Categories(uint(hotelID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": names})
}

// GET /get_food_items?category=&search=&hotel_id=&page=
// Responds with a bare page of product records; fewer than PageSize
// rows tells the storefront it reached the last page.
func (h *ProductController) FoodItems(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Query("hotel_id"), 10, 32)
	if err != nil || hotelID == 0 {
		resp.BadRequest(c, "invalid hotel_id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	rows, err := h.Svc.ListFoodItems(c.Request.Context(), uint(hotelID),
		c.Query("category"), c.Query("search"), page)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if rows == nil {
		rows = []repository.ProductRow{}
	}
	c.JSON(http.StatusOK, rows)
}
