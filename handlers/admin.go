package handlers

import (
	"net/http"

	"food-storefront/listing"
	"food-storefront/models"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type RestaurantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Cuisine      string   `json:"cuisine" binding:"required"`
	Location     string   `json:"location"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Rating       float64  `json:"rating" binding:"gte=0,lte=5"`
	DeliveryTime string   `json:"deliveryTime"`
	PriceRange   string   `json:"priceRange" binding:"omitempty,oneof=budget mid premium"`
	AvgCost      float64  `json:"avgCost" binding:"gte=0"`
	DeliveryFee  float64  `json:"deliveryFee" binding:"gte=0"`
	MinOrder     float64  `json:"minOrder" binding:"gte=0"`
	Offers       []string `json:"offers"`
	Specialities []string `json:"specialities"`
	IsOpen       bool     `json:"isOpen"`
	IsVeg        bool     `json:"isVeg"`
	Featured     bool     `json:"featured"`
}

func (r RestaurantRequest) model() models.Restaurant {
	return models.Restaurant{
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Location:     r.Location,
		Image:        r.Image,
		Description:  r.Description,
		Rating:       r.Rating,
		DeliveryTime: r.DeliveryTime,
		PriceRange:   r.PriceRange,
		AvgCost:      decimal.NewFromFloat(r.AvgCost),
		DeliveryFee:  decimal.NewFromFloat(r.DeliveryFee),
		MinOrder:     decimal.NewFromFloat(r.MinOrder),
		Offers:       r.Offers,
		Specialities: r.Specialities,
		IsOpen:       r.IsOpen,
		IsVeg:        r.IsVeg,
		Featured:     r.Featured,
	}
}

type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Restaurant  string  `json:"restaurant" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	IsVeg       bool    `json:"isVeg"`
	IsAvailable *bool   `json:"isAvailable"`
}

// model defaults IsAvailable to true when the form leaves it out.
func (r MenuItemRequest) model() models.MenuItem {
	available := r.IsAvailable == nil || *r.IsAvailable
	return models.MenuItem{
		Name:        r.Name,
		Restaurant:  r.Restaurant,
		Price:       decimal.NewFromFloat(r.Price),
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
		IsVeg:       r.IsVeg,
		IsAvailable: available,
	}
}

// AdminDashboard loads restaurants, bookings, orders and menu in parallel and
// summarises them
func (h *Handler) AdminDashboard(c *gin.Context) {
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	var (
		restaurants []models.Restaurant
		bookings    []models.Booking
		orders      []models.Order
		menu        []models.MenuItem
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		restaurants, err = api.ListRestaurants(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = api.AllBookings(ctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = api.AllOrders(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		menu, err = api.ListMenu(ctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		h.upstreamError(c, err, "Failed to load dashboard")
		return
	}

	orderSummary := map[string]int{}
	for _, o := range orders {
		orderSummary[string(o.Status)]++
	}
	bookingSummary := map[string]int{}
	for _, b := range bookings {
		bookingSummary[string(b.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"restaurants": len(restaurants),
			"bookings":    len(bookings),
			"orders":      len(orders),
			"menuItems":   len(menu),
		},
		"order_summary":   orderSummary,
		"booking_summary": bookingSummary,
		"restaurants":     restaurants,
		"bookings":        bookings,
		"orders":          orders,
		"menuItems":       menu,
	})
}

// AdminGetOrders lists every order, optionally filtered by status
func (h *Handler) AdminGetOrders(c *gin.Context) {
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	orders, err := api.AllOrders(c.Request.Context(), nil)
	if err != nil {
		h.upstreamError(c, err, "Failed to load orders")
		return
	}
	orders = listing.FilterOrders(orders, c.Query("status"))
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdminGetBookings lists every booking, optionally filtered by status
func (h *Handler) AdminGetBookings(c *gin.Context) {
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
	bookings = listing.FilterBookings(bookings, c.Query("status"))
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

func (h *Handler) AdminCreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	r, err := api.CreateRestaurant(c.Request.Context(), req.model())
	if err != nil {
		h.upstreamError(c, err, "Failed to create restaurant")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": r})
}

func (h *Handler) AdminUpdateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	r, err := api.UpdateRestaurant(c.Request.Context(), c.Param("id"), req.model())
	if err != nil {
		h.upstreamError(c, err, "Failed to update restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": r})
}

func (h *Handler) AdminDeleteRestaurant(c *gin.Context) {
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if err := api.DeleteRestaurant(c.Request.Context(), c.Param("id")); err != nil {
		h.upstreamError(c, err, "Failed to delete restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

func (h *Handler) AdminCreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	m, err := api.CreateMenuItem(c.Request.Context(), req.model())
	if err != nil {
		h.upstreamError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "menuItem": m})
}

func (h *Handler) AdminUpdateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	m, err := api.UpdateMenuItem(c.Request.Context(), c.Param("id"), req.model())
	if err != nil {
		h.upstreamError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menuItem": m})
}

func (h *Handler) AdminDeleteMenuItem(c *gin.Context) {
	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if err := api.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		h.upstreamError(c, err, "Failed to delete menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// GetStateMachine documents who may move orders and bookings between statuses
func (h *Handler) GetStateMachine(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders":   statemachine.GetAllTransitions(),
		"bookings": statemachine.GetAllBookingTransitions(),
	})
}
