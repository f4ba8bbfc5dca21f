package routes

import (
	"time"

	"food-storefront/handlers"
	"food-storefront/middleware"
	"food-storefront/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, secret []byte, ttl time.Duration) {
	r.GET("/health", h.Health)

	// Every storefront route runs with a profile
	shell := r.Group("/")
	shell.Use(middleware.Profile(secret, ttl))
	{
		shell.GET("/", h.Home)
		shell.GET("/login", h.LoginPage)
		shell.POST("/login", h.Login)
		shell.POST("/register", h.Register)
		shell.POST("/logout", h.Logout)

		// Discovery
		shell.GET("/restaurants", h.ListRestaurants)
		shell.POST("/restaurants/:id/favorite", h.ToggleRestaurantFavorite)
		shell.GET("/restaurant/:id", h.GetRestaurant)
		shell.GET("/menu/:restaurantId", h.GetMenu)
		shell.POST("/menu/:restaurantId/favorites/:itemId", h.ToggleMenuFavorite)

		// Cart works for anonymous profiles too
		shell.GET("/cart", h.GetCart)
		shell.POST("/cart/items", h.AddCartItem)
		shell.PUT("/cart/items/:lineId", h.UpdateCartItem)
		shell.DELETE("/cart/items/:lineId", h.RemoveCartItem)
		shell.DELETE("/cart", h.ClearCart)
		shell.POST("/cart/promo", h.ApplyPromo)
		shell.DELETE("/cart/promo", h.RemovePromo)
		shell.GET("/cart/bill", h.GetBill)

		shell.GET("/order-confirmation/:orderId", h.GetOrderConfirmation)
		shell.GET("/order-confirmation/:orderId/qrcode", h.GetOrderQRCode)
		shell.DELETE("/order-confirmation/:orderId/tracking", h.StopOrderTracking)
	}

	// ── Logged-in routes ───────────────────────────────────────────
	user := shell.Group("/")
	user.Use(middleware.LoginRequired(h.Store))
	{
		user.POST("/restaurant/:id/bookings", h.CreateBooking)

		user.GET("/checkout", h.GetCheckout)
		user.PUT("/checkout/details", h.SaveCheckoutDetails)
		user.PUT("/checkout/address", h.SaveCheckoutAddress)
		user.PUT("/checkout/payment", h.SaveCheckoutPayment)
		user.POST("/checkout/next", h.CheckoutNext)
		user.POST("/checkout/back", h.CheckoutBack)
		user.POST("/checkout/submit", h.SubmitCheckout)

		user.GET("/orders", h.GetMyOrders)
		user.POST("/orders/:id/cancel", h.CancelOrder)
		user.GET("/bookings", h.GetMyBookings)
		user.POST("/bookings/:id/cancel", h.CancelBooking)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := shell.Group("/admin")
	admin.Use(middleware.LoginRequired(h.Store), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/state-machine", h.GetStateMachine)

		admin.POST("/restaurants", h.AdminCreateRestaurant)
		admin.PUT("/restaurants/:id", h.AdminUpdateRestaurant)
		admin.DELETE("/restaurants/:id", h.AdminDeleteRestaurant)

		admin.POST("/menu", h.AdminCreateMenuItem)
		admin.PUT("/menu/:id", h.AdminUpdateMenuItem)
		admin.DELETE("/menu/:id", h.AdminDeleteMenuItem)

		admin.GET("/orders", h.AdminGetOrders)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
		admin.GET("/bookings", h.AdminGetBookings)
		admin.PUT("/bookings/:id/status", h.UpdateBookingStatus)
	}
}
