package middleware

import (
	"errors"
	"net/http"
	"time"

	"food-storefront/models"
	"food-storefront/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie carries the signed profile id of a browser.
const SessionCookie = "storefront_session"

type Claims struct {
	ProfileID string `json:"profile_id"`
	jwt.RegisteredClaims
}

// GenerateProfileToken signs a token naming profileID.
func GenerateProfileToken(secret []byte, profileID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseProfileToken returns the profile id of a valid token.
func ParseProfileToken(secret []byte, tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ProfileID == "" {
		return "", errors.New("invalid profile token")
	}
	return claims.ProfileID, nil
}

// Profile resolves the browser profile from the session cookie, minting a
// new profile when the cookie is missing or invalid.
func Profile(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if id, err := ParseProfileToken(secret, raw); err == nil {
				c.Set("profile", id)
				c.Next()
				return
			}
		}

		id := uuid.NewString()
		token, err := GenerateProfileToken(secret, id, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
		c.Set("profile", id)
		c.Next()
	}
}

// GetProfile extracts the profile id set by Profile
func GetProfile(c *gin.Context) string {
	return c.GetString("profile")
}

// LoginRequired loads the logged-in user of the profile. Anonymous profiles
// are told to go to /login.
func LoginRequired(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := storage.NewSession(store, GetProfile(c))
		user, ok, err := storage.Lookup[models.User](c.Request.Context(), sess, storage.KeyUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load session"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required", "redirect": "/login"})
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// RoleRequired enforces that the logged-in user has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required", "redirect": "/login"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "redirect": "/"})
		c.Abort()
	}
}

// GetUser extracts the user set by LoginRequired
func GetUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get("user")
	if !ok {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
