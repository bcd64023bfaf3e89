package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/cache"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)

	// Services
	listingCache := cache.Cache(cache.NewNoop())
	if cfg.RedisAddr != "" {
		listingCache = cache.NewRedis(cfg.RedisAddr, "storefront")
	}
	productSvc := services.NewProductService(productRepo, listingCache)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, tableRepo)
	orderSvc.Notifier = hub
	tableSvc := services.NewTableService(tableRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	adminCtrl := controllers.NewAdminController(db, productSvc, tableSvc, orderRepo, productRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Storefront (public; diners order by table without an account)
	r.GET("/categories/:hotelId", productCtrl.Categories)
	r.GET("/get_food_items", productCtrl.FoodItems)
	r.GET("/orders/pending/:hotelId/:tableNumber", orderCtrl.Pending)
	r.POST("/orders", orderCtrl.Create)
	r.PUT("/orders/:orderId/add-items", orderCtrl.AddItems)

	// Cart (per signed-in user, persisted across reloads)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/qty", cartCtrl.UpdateQty)
		cart.POST("/items/:id/increment", cartCtrl.Increment)
		cart.POST("/items/:id/decrement", cartCtrl.Decrement)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Staff / admin
	r.PUT("/orders/:orderId/complete", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), orderCtrl.Complete)

	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/orders", orderCtrl.ListForHotel)
		admin.POST("/products", adminCtrl.CreateProduct)
		admin.PATCH("/products/:id", adminCtrl.UpdateProduct)
		admin.DELETE("/products/:id", adminCtrl.DeleteProduct)
		admin.GET("/tables", adminCtrl.ListTables)
		admin.POST("/tables", adminCtrl.CreateTable)
		admin.DELETE("/tables/:id", adminCtrl.DeleteTable)
		admin.GET("/users", adminCtrl.Users)
	}

	// Live order feed for the admin dashboard
	r.GET("/ws/orders/:hotelId", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), hub.Serve)
}
