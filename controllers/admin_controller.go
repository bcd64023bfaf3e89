package controllers

import (
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB          *gorm.DB
	Products    *services.ProductService
	Tables      *services.TableService
	OrderRepo   *repository.OrderRepository
	ProductRepo *repository.ProductRepository
}

func NewAdminController(db *gorm.DB, ps *services.ProductService, ts *services.TableService, or *repository.OrderRepository, pr *repository.ProductRepository) *AdminController {
	return &AdminController{DB: db, Products: ps, Tables: ts, OrderRepo: or, ProductRepo: pr}
}

// GET /admin/dashboard?hotelId=
func (h *AdminController) Dashboard(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Query("hotelId"), 10, 32)
	if err != nil || hotelID == 0 {
		resp.BadRequest(c, "invalid hotelId")
		return
	}

	stats, err := h.OrderRepo.StatsForHotel(uint(hotelID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	productCount, err := h.ProductRepo.Count(uint(hotelID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"pendingCount": stats.PendingCount,
		"todayCount":   stats.TodayCount,
		"todayRevenue": stats.TodayRevenue,
		"productCount": productCount,
	})
}

// ---------------- products ----------------

type ProductIn struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"desc"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"imageUrl"`
	Category     string  `json:"category" binding:"required"`
	HotelID      uint    `json:"hotelId" binding:"required"`
	WeightBased  bool    `json:"weightBased"`
	PricePer100g float64 `json:"pricePer100g"`
}

// POST /admin/products
func (h *AdminController) CreateProduct(c *gin.Context) {
	var in ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if in.WeightBased && in.PricePer100g <= 0 {
		resp.BadRequest(c, "weight-based product needs pricePer100g")
		return
	}

	cat, err := h.ProductRepo.GetOrCreateCategory(in.HotelID, in.Category)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	p := entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Rating:       in.Rating,
		ImageURL:     in.ImageURL,
		CategoryID:   cat.ID,
		HotelID:      in.HotelID,
		WeightBased:  in.WeightBased,
		PricePer100g: in.PricePer100g,
	}
	if err := h.Products.Create(&p); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /admin/products/:id
func (h *AdminController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	p, err := h.Products.Get(uint(id))
	if err != nil {
		resp.NotFound(c, "product not found")
		return
	}

	var in ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.ProductRepo.GetOrCreateCategory(p.HotelID, in.Category)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Rating = in.Rating
	p.ImageURL = in.ImageURL
	p.CategoryID = cat.ID
	p.WeightBased = in.WeightBased
	p.PricePer100g = in.PricePer100g
	if err := h.Products.Update(p); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /admin/products/:id
func (h *AdminController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}
	if err := h.Products.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ---------------- tables ----------------

// GET /admin/tables?hotelId=
func (h *AdminController) ListTables(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Query("hotelId"), 10, 32)
	if err != nil || hotelID == 0 {
		resp.BadRequest(c, "invalid hotelId")
		return
	}
	ts, err := h.Tables.List(uint(hotelID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ts)
}

// POST /admin/tables
func (h *AdminController) CreateTable(c *gin.Context) {
	var in struct {
		HotelID uint   `json:"hotelId" binding:"required"`
		Number  string `json:"number" binding:"required"`
		Seats   int    `json:"seats"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t := entity.DiningTable{HotelID: in.HotelID, Number: in.Number, Seats: in.Seats}
	if err := h.Tables.Create(&t); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, t)
}

// DELETE /admin/tables/:id
func (h *AdminController) DeleteTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}
	if err := h.Tables.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ---------------- users ----------------

// GET /admin/users
func (h *AdminController) Users(c *gin.Context) {
	var users []entity.User
	if err := h.DB.Order("id").Find(&users).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, users)
}
