package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/velure-shop/velure-backend-go/handlers"
	customMiddleware "github.com/velure-shop/velure-backend-go/middleware"
)

func SetupRoutes(e *echo.Echo) {
	// Public routes
	e.POST("/register", handlers.RegisterUser)
	e.POST("/login", handlers.LoginUser)

	// Storefront catalog (no auth)
	e.GET("/api/products", handlers.GetProducts)
	e.GET("/api/products/featured", handlers.GetFeaturedProducts)
	e.GET("/api/products/categories", handlers.GetCategories)
	e.GET("/api/products/handle/:handle", handlers.GetProductByHandle)
	e.GET("/api/products/:id", handlers.GetProduct)

	// Payment gateway webhook (authenticated by the gateway, not a user)
	e.POST("/api/payments/webhook", handlers.PaymentWebhook)

	// Protected API routes
	api := e.Group("/api")
	api.Use(customMiddleware.Auth())

	// User routes
	api.GET("/users/me", handlers.GetUserProfile)
	api.PUT("/users/me", handlers.UpdateUserProfile)
	api.GET("/users/me/addresses", handlers.GetUserAddresses)
	api.POST("/users/me/addresses", handlers.AddUserAddress)
	api.PUT("/users/me/addresses/:id", handlers.UpdateUserAddress)
	api.DELETE("/users/me/addresses/:id", handlers.DeleteUserAddress)

	// Cart routes
	api.GET("/cart", handlers.GetCart)
	api.POST("/cart", handlers.AddToCart)
	api.DELETE("/cart/:sku", handlers.RemoveFromCart)
	api.PUT("/cart/quantity", handlers.UpdateCartItemQuantity)

	// Order routes
	api.POST("/orders", handlers.CreateOrder)
	api.GET("/orders", handlers.GetMyOrders)
	api.GET("/orders/:orderId", handlers.GetOrder)
	api.GET("/orders/:orderId/status", handlers.GetOrderStatus)
	api.POST("/orders/:orderId/checkout", handlers.CreateCheckoutSession)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(customMiddleware.RequireAdmin())
	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)
	admin.POST("/products/:id/variants/generate", handlers.RegenerateVariants)
	admin.PUT("/products/:id/inventory", handlers.UpdateInventory)
	admin.GET("/orders", handlers.ListOrders)
	admin.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
