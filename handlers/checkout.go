package handlers

import (
	"context"
	"errors"
	"net/http"

	"food-storefront/checkout"

	"github.com/gin-gonic/gin"
)

// checkoutError maps sequencer failures to responses. An empty cart sends the
// client back to the restaurant list.
func (h *Handler) checkoutError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/restaurants"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Please complete the required fields",
			"stage":  verr.Stage,
			"fields": verr.Fields,
		})
	case errors.Is(err, checkout.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Your order is already being placed"})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) checkoutStep(c *gin.Context, fn func(ctx context.Context, profile string) (checkout.View, error)) {
	view, err := fn(c.Request.Context(), h.session(c).Profile())
	if err != nil {
		h.checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetCheckout enters checkout, prefilled from the logged-in user
func (h *Handler) GetCheckout(c *gin.Context) {
	h.checkoutStep(c, h.Checkout.Enter)
}

func (h *Handler) SaveCheckoutDetails(c *gin.Context) {
	var f checkout.DetailsForm
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.checkoutStep(c, func(ctx context.Context, profile string) (checkout.View, error) {
		return h.Checkout.SaveDetails(ctx, profile, f)
	})
}

func (h *Handler) SaveCheckoutAddress(c *gin.Context) {
	var f checkout.AddressForm
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.checkoutStep(c, func(ctx context.Context, profile string) (checkout.View, error) {
		return h.Checkout.SaveAddress(ctx, profile, f)
	})
}

func (h *Handler) SaveCheckoutPayment(c *gin.Context) {
	var f checkout.PaymentForm
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.checkoutStep(c, func(ctx context.Context, profile string) (checkout.View, error) {
		return h.Checkout.SavePayment(ctx, profile, f)
	})
}

func (h *Handler) CheckoutNext(c *gin.Context) {
	h.checkoutStep(c, h.Checkout.Next)
}

func (h *Handler) CheckoutBack(c *gin.Context) {
	h.checkoutStep(c, h.Checkout.Back)
}

// SubmitCheckout places the order and tells the client where the
// confirmation lives.
func (h *Handler) SubmitCheckout(c *gin.Context) {
	rec, err := h.Checkout.Submit(c.Request.Context(), h.session(c).Profile())
	var verr *checkout.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"order":    rec,
			"message":  "Order placed successfully",
			"redirect": checkout.ConfirmationPath(rec.OrderID),
		})
	case errors.Is(err, checkout.ErrEmptyCart), errors.As(err, &verr),
		errors.Is(err, checkout.ErrInvalidTransition), errors.Is(err, checkout.ErrSubmissionInFlight):
		h.checkoutError(c, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request ended before the order was confirmed"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to place order. Please try again."})
	}
}
