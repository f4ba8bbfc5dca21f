package handlers

import (
	"net/http"

	"food-storefront/checkout"
	"food-storefront/models"
	"food-storefront/storage"
	"food-storefront/tracking"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// lastOrder loads the confirmation snapshot for the order in the path.
func (h *Handler) lastOrder(c *gin.Context) (models.OrderRecord, bool) {
	rec, ok, err := storage.Lookup[models.OrderRecord](c.Request.Context(), h.session(c), storage.KeyLastOrder)
	if err != nil {
		h.internalError(c, err)
		return rec, false
	}
	if !ok || rec.OrderID != c.Param("orderId") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "redirect": "/"})
		return rec, false
	}
	return rec, true
}

// GetOrderConfirmation shows the last placed order and starts following its
// progress.
func (h *Handler) GetOrderConfirmation(c *gin.Context) {
	rec, ok := h.lastOrder(c)
	if !ok {
		return
	}
	token, _, err := storage.Lookup[string](c.Request.Context(), h.session(c), storage.KeyToken)
	if err != nil {
		h.internalError(c, err)
		return
	}
	v := h.Tracking.Watch(tracking.Subject{
		OrderID:       rec.OrderID,
		ServerOrderID: rec.ServerOrderID,
		Token:         token,
	})
	c.JSON(http.StatusOK, gin.H{
		"order":         rec,
		"tracking":      v.Progress(),
		"estimatedTime": rec.EstimatedTime,
		"shareUrl":      h.shareURL(rec.OrderID),
	})
}

// GetOrderQRCode renders the share link of the confirmation as a PNG.
func (h *Handler) GetOrderQRCode(c *gin.Context) {
	rec, ok := h.lastOrder(c)
	if !ok {
		return
	}
	png, err := qrcode.Encode(h.shareURL(rec.OrderID), qrcode.Medium, 256)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// StopOrderTracking ends the progress feed when the client leaves the page.
func (h *Handler) StopOrderTracking(c *gin.Context) {
	if _, ok := h.lastOrder(c); !ok {
		return
	}
	if !h.Tracking.Stop(c.Param("orderId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order is not being tracked"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) shareURL(orderID string) string {
	return h.PublicURL + checkout.ConfirmationPath(orderID)
}
