package handlers

import (
	"net/http"

	"food-storefront/cart"
	"food-storefront/listing"
	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/storage"

	"github.com/gin-gonic/gin"
)

// GetRestaurant returns a single restaurant with its booking form defaults
func (h *Handler) GetRestaurant(c *gin.Context) {
	r, err := h.Catalog.Restaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.catalogError(c, err, "Restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": r,
		"bookingDefaults": gin.H{
			"guests": 2,
		},
	})
}

// CreateBooking reserves a table at the restaurant for the logged-in user
func (h *Handler) CreateBooking(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	var req models.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	r, err := h.Catalog.Restaurant(ctx, c.Param("id"))
	if err != nil {
		h.catalogError(c, err, "Restaurant")
		return
	}
	req.ID = ""
	req.Restaurant = r.ID
	req.RestaurantName = r.Name
	req.User = user.ID
	req.Status = models.BookingPending

	api, err := h.api(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	booking, err := api.CreateBooking(ctx, req)
	if err != nil {
		h.upstreamError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking, "message": "Table booked successfully"})
}

// GetMenu returns the restaurant's menu filtered by category, search and veg
// mode, with the profile's cart quantities and favorites
func (h *Handler) GetMenu(c *gin.Context) {
	var f listing.MenuFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	restaurantID := c.Param("restaurantId")
	r, err := h.Catalog.Restaurant(ctx, restaurantID)
	if err != nil {
		h.catalogError(c, err, "Restaurant")
		return
	}
	items, err := h.Catalog.Menu(ctx, restaurantID)
	if err != nil {
		h.catalogError(c, err, "menu")
		return
	}
	categories := listing.Categories(items)
	if f.Category == "" && len(categories) > 0 {
		f.Category = categories[0]
	}
	favorites, err := listing.Favorites(ctx, h.session(c), storage.KeyFavorites)
	if err != nil {
		h.internalError(c, err)
		return
	}

	filtered := listing.FilterMenu(items, f)
	quantities := make(map[string]int, len(filtered))
	var summary gin.H
	err = h.Carts.With(ctx, h.session(c).Profile(), func(e *cart.Engine) error {
		for _, m := range filtered {
			if q := e.QuantityOf(m.ID); q > 0 {
				quantities[m.ID] = q
			}
		}
		snapshot := e.Cart()
		summary = gin.H{"itemCount": snapshot.ItemCount(), "totalAmount": snapshot.TotalAmount}
		return nil
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":     r,
		"categories":     categories,
		"activeCategory": f.Category,
		"items":          filtered,
		"favorites":      favorites,
		"cartQuantities": quantities,
		"cart":           summary,
	})
}

// ToggleMenuFavorite adds or removes a menu item from favorites
func (h *Handler) ToggleMenuFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.Catalog.MenuItem(ctx, c.Param("restaurantId"), c.Param("itemId")); err != nil {
		h.catalogError(c, err, "Menu item")
		return
	}
	ids, on, err := listing.ToggleFavorite(ctx, h.session(c), storage.KeyFavorites, c.Param("itemId"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids, "favorite": on})
}
