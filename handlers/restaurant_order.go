package handlers

import (
	"net/http"
	"slices"

	"food-storefront/apiclient"
	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// CancelOrder lets a customer cancel their own order before it is prepared
func (h *Handler) CancelOrder(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	order, ok := h.fetchOrder(c, api)
	if !ok {
		return
	}
	if order.User != "" && order.User != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	h.transitionOrder(c, api, order, models.StatusCancelled, statemachine.ActorCustomer)
}

// UpdateOrderStatus moves an order along its lifecycle on behalf of an admin
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	order, ok := h.fetchOrder(c, api)
	if !ok {
		return
	}
	h.transitionOrder(c, api, order, req.Status, statemachine.ActorAdmin)
}

func (h *Handler) fetchOrder(c *gin.Context, api *apiclient.Client) (models.Order, bool) {
	order, err := api.GetOrder(c.Request.Context(), c.Param("id"))
	if apiclient.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return order, false
	}
	if err != nil {
		h.upstreamError(c, err, "Failed to load order")
		return order, false
	}
	return order, true
}

func (h *Handler) transitionOrder(c *gin.Context, api *apiclient.Client, order models.Order, to models.OrderStatus, actor statemachine.Actor) {
	if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}
	updated, err := api.UpdateOrderStatus(c.Request.Context(), order.ID, to)
	if err != nil {
		h.upstreamError(c, err, "Failed to update order")
		return
	}
	h.Log.Info().Str("order_id", order.ID).Str("from", string(order.Status)).
		Str("to", string(to)).Str("actor", string(actor)).Msg("order status changed")
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order":           updated,
		"previous_status": string(order.Status),
		"current_status":  string(to),
	})
}

// CancelBooking lets a customer cancel a pending table booking
func (h *Handler) CancelBooking(c *gin.Context) {
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
	h.transitionBooking(c, api, bookings, models.BookingCancelled, statemachine.ActorCustomer)
}

// UpdateBookingStatus confirms or cancels any booking on behalf of an admin
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	bookings, err := api.AllBookings(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err, "Failed to load bookings")
		return
	}
	h.transitionBooking(c, api, bookings, req.Status, statemachine.ActorAdmin)
}

func (h *Handler) transitionBooking(c *gin.Context, api *apiclient.Client, bookings []models.Booking, to models.BookingStatus, actor statemachine.Actor) {
	id := c.Param("id")
	i := slices.IndexFunc(bookings, func(b models.Booking) bool { return b.ID == id })
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	b := bookings[i]
	if err := statemachine.CanTransitionBooking(b.Status, to, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    b.Status,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidBookingTransitionsFrom(b.Status),
		})
		return
	}
	updated, err := api.UpdateBookingStatus(c.Request.Context(), id, to)
	if err != nil {
		h.upstreamError(c, err, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Booking status updated",
		"booking":         updated,
		"previous_status": string(b.Status),
		"current_status":  string(to),
	})
}
