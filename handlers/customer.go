package handlers

import (
	"net/http"

	"food-storefront/listing"
	"food-storefront/middleware"

	"github.com/gin-gonic/gin"
)

// GetMyOrders returns the logged-in user's orders, optionally filtered by status
func (h *Handler) GetMyOrders(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	orders, err := api.UserOrders(c.Request.Context(), user.ID)
	if err != nil {
		h.upstreamError(c, err, "Failed to load orders")
		return
	}
	orders = listing.FilterOrders(orders, c.Query("status"))

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// GetMyBookings returns the logged-in user's table bookings
func (h *Handler) GetMyBookings(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	bookings, err := api.UserBookings(c.Request.Context(), user.ID)
	if err != nil {
		h.upstreamError(c, err, "Failed to load bookings")
		return
	}
	bookings = listing.FilterBookings(bookings, c.Query("status"))
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}
