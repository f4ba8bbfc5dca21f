package handlers

import (
	"net/http"

	"food-storefront/cart"
	"food-storefront/listing"
	"food-storefront/storage"

	"github.com/gin-gonic/gin"
)

var cuisineCategories = []string{"Indian", "Chinese", "Italian", "Mexican", "Thai", "Desserts", "Beverages", "Healthy"}

// Home returns the landing page: greeting, featured restaurants and offers
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	restaurants, err := h.Catalog.Restaurants(ctx)
	if err != nil {
		h.catalogError(c, err, "restaurants")
		return
	}

	var itemCount int
	err = h.Carts.With(ctx, h.session(c).Profile(), func(e *cart.Engine) error {
		itemCount = e.Cart().ItemCount()
		return nil
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"greeting":            listing.Greeting(h.now().Hour()),
		"user":                h.currentUser(c),
		"featuredRestaurants": listing.Featured(restaurants),
		"cuisineCategories":   cuisineCategories,
		"promoCodes":          h.Carts.Catalog().All(),
		"cartItemCount":       itemCount,
	})
}

// ListRestaurants filters and sorts the restaurant list from query params
func (h *Handler) ListRestaurants(c *gin.Context) {
	var f listing.RestaurantFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	all, err := h.Catalog.Restaurants(ctx)
	if err != nil {
		h.catalogError(c, err, "restaurants")
		return
	}
	favorites, err := listing.Favorites(ctx, h.session(c), storage.KeyRestaurantFavorites)
	if err != nil {
		h.internalError(c, err)
		return
	}
	filtered := listing.FilterRestaurants(all, f)
	c.JSON(http.StatusOK, gin.H{
		"restaurants": filtered,
		"count":       len(filtered),
		"total":       len(all),
		"favorites":   favorites,
	})
}

// ToggleRestaurantFavorite adds or removes a restaurant from favorites
func (h *Handler) ToggleRestaurantFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.Catalog.Restaurant(ctx, id); err != nil {
		h.catalogError(c, err, "Restaurant")
		return
	}
	ids, on, err := listing.ToggleFavorite(ctx, h.session(c), storage.KeyRestaurantFavorites, id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids, "favorite": on})
}
