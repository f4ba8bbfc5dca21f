// Package handlers serves the storefront pages as JSON view models.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"food-storefront/apiclient"
	"food-storefront/cart"
	"food-storefront/catalog"
	"food-storefront/checkout"
	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/storage"
	"food-storefront/tracking"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	Store     storage.Store
	Carts     *cart.Service
	Checkout  *checkout.Sequencer
	Catalog   catalog.Source
	API       *apiclient.Client
	Tracking  *tracking.Registry
	PublicURL string
	Log       zerolog.Logger
	Now       func() time.Time
}

func (h *Handler) session(c *gin.Context) *storage.Session {
	return storage.NewSession(h.Store, middleware.GetProfile(c))
}

// api returns the upstream client authenticated as the profile's user.
func (h *Handler) api(c *gin.Context) (*apiclient.Client, error) {
	token, _, err := storage.Lookup[string](c.Request.Context(), h.session(c), storage.KeyToken)
	if err != nil {
		return nil, err
	}
	return h.API.WithToken(token), nil
}

func (h *Handler) currentUser(c *gin.Context) *models.User {
	if u, ok := middleware.GetUser(c); ok {
		return &u
	}
	u, ok, err := storage.Lookup[models.User](c.Request.Context(), h.session(c), storage.KeyUser)
	if err != nil || !ok {
		return nil
	}
	return &u
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}

// upstreamError passes client errors from the API through and reports
// everything else as a bad gateway.
func (h *Handler) upstreamError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

func (h *Handler) catalogError(c *gin.Context, err error, what string) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	h.upstreamError(c, err, "Failed to load "+what)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Food Storefront",
		"version": "1.0.0",
	})
}
