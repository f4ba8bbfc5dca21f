package handlers

import (
	"errors"
	"net/http"

	"food-storefront/cart"
	"food-storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	RestaurantID   string   `json:"restaurantId" binding:"required"`
	MenuItemID     string   `json:"menuItemId" binding:"required"`
	Customizations []string `json:"customizations"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type PromoRequest struct {
	Code string `json:"code" binding:"required"`
}

type BillQuery struct {
	OrderType models.OrderType `form:"orderType"`
	Tip       string           `form:"tip"`
}

func cartView(e *cart.Engine) gin.H {
	c := e.Cart()
	return gin.H{
		"cart":         c,
		"itemCount":    c.ItemCount(),
		"promoApplied": e.PromoApplied(),
		"discount":     e.Discount(),
	}
}

// withCart runs fn on the profile's cart and answers with the cart view.
func (h *Handler) withCart(c *gin.Context, status int, fn func(*cart.Engine) error) {
	var view gin.H
	err := h.Carts.With(c.Request.Context(), h.session(c).Profile(), func(e *cart.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		view = cartView(e)
		return nil
	})
	switch {
	case err == nil:
		c.JSON(status, view)
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case cart.IsPromoRejection(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": cart.PromoRejectedMessage})
	default:
		h.internalError(c, err)
	}
}

// GetCart returns the profile's cart
func (h *Handler) GetCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(*cart.Engine) error { return nil })
}

// AddCartItem adds one unit of a menu item. The price comes from the catalog,
// never from the request.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Catalog.MenuItem(c.Request.Context(), req.RestaurantID, req.MenuItemID)
	if err != nil {
		h.catalogError(c, err, "Menu item")
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}
	h.withCart(c, http.StatusCreated, func(e *cart.Engine) error {
		_, err := e.AddItem(c.Request.Context(), item, req.Customizations...)
		return err
	})
}

// UpdateCartItem sets a line's quantity; zero or less removes the line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.withCart(c, http.StatusOK, func(e *cart.Engine) error {
		return e.UpdateQuantity(c.Request.Context(), c.Param("lineId"), *req.Quantity)
	})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(e *cart.Engine) error {
		return e.RemoveItem(c.Request.Context(), c.Param("lineId"))
	})
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(e *cart.Engine) error {
		return e.Clear(c.Request.Context())
	})
}

func (h *Handler) ApplyPromo(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.withCart(c, http.StatusOK, func(e *cart.Engine) error {
		_, err := e.ApplyPromoCode(c.Request.Context(), req.Code)
		return err
	})
}

func (h *Handler) RemovePromo(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(e *cart.Engine) error {
		return e.RemovePromoCode(c.Request.Context())
	})
}

// GetBill previews the bill for an order type and tip without saving anything
func (h *Handler) GetBill(c *gin.Context) {
	var q BillQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.OrderType == "" {
		q.OrderType = models.OrderDelivery
	}
	tip := decimal.Zero
	if q.Tip != "" {
		var err error
		if tip, err = decimal.NewFromString(q.Tip); err != nil || tip.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tip must be a non-negative amount"})
			return
		}
	}
	var bill models.BillBreakdown
	err := h.Carts.With(c.Request.Context(), h.session(c).Profile(), func(e *cart.Engine) error {
		bill = e.ComputeBill(q.OrderType, tip)
		return nil
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
