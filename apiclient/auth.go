package apiclient

import (
	"context"
	"net/http"

	"food-storefront/models"
)

func (c *Client) Register(ctx context.Context, r models.Registration) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "auth/register", nil, r, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, cred models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "auth/login", nil, cred, &out)
	return out, err
}
