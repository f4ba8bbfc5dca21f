package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"food-storefront/models"
)

func (c *Client) ListMenu(ctx context.Context, params url.Values) ([]models.MenuItem, error) {
	var out []models.MenuItem
	err := c.do(ctx, http.MethodGet, "menu", params, nil, &out)
	return out, err
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	var out models.MenuItem
	err := c.do(ctx, http.MethodGet, "menu/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) MenuByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	err := c.do(ctx, http.MethodGet, "menu/restaurant/"+url.PathEscape(restaurantID), nil, nil, &out)
	return out, err
}

func (c *Client) CreateMenuItem(ctx context.Context, m models.MenuItem) (models.MenuItem, error) {
	var out models.MenuItem
	err := c.do(ctx, http.MethodPost, "menu", nil, m, &out)
	return out, err
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, m models.MenuItem) (models.MenuItem, error) {
	var out models.MenuItem
	err := c.do(ctx, http.MethodPut, "menu/"+url.PathEscape(id), nil, m, &out)
	return out, err
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "menu/"+url.PathEscape(id), nil, nil, nil)
}
