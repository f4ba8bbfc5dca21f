package handlers

import (
	"net/http"

	"food-storefront/models"
	"food-storefront/storage"

	"github.com/gin-gonic/gin"
)

// LoginPage tells the client whether the profile is already logged in
func (h *Handler) LoginPage(c *gin.Context) {
	if u := h.currentUser(c); u != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": u, "redirect": "/"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": false})
}

// Register creates an account upstream and logs the profile in
func (h *Handler) Register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.API.Register(c.Request.Context(), req)
	if err != nil {
		h.upstreamError(c, err, "Registration failed")
		return
	}
	if err := h.startSession(c, resp); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": resp.User, "redirect": "/"})
}

// Login exchanges credentials for a token and stores it with the profile
func (h *Handler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.API.Login(c.Request.Context(), req)
	if err != nil {
		h.upstreamError(c, err, "Login failed")
		return
	}
	if err := h.startSession(c, resp); err != nil {
		h.internalError(c, err)
		return
	}
	redirect := "/"
	if resp.User.IsAdmin() {
		redirect = "/admin"
	}
	c.JSON(http.StatusOK, gin.H{"user": resp.User, "redirect": redirect})
}

// Logout forgets the token and user; cart and favorites stay with the profile
func (h *Handler) Logout(c *gin.Context) {
	if err := h.session(c).Delete(c.Request.Context(), storage.KeyToken, storage.KeyUser); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/"})
}

func (h *Handler) startSession(c *gin.Context, resp models.AuthResponse) error {
	ctx := c.Request.Context()
	sess := h.session(c)
	if err := sess.SetJSON(ctx, storage.KeyToken, resp.Token); err != nil {
		return err
	}
	if err := sess.SetJSON(ctx, storage.KeyUser, resp.User); err != nil {
		return err
	}
	h.Log.Info().Str("profile", sess.Profile()).Str("user", resp.User.ID).Msg("logged in")
	return nil
}
