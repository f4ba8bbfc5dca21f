package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"food-storefront/models"
)

func (c *Client) ListRestaurants(ctx context.Context, params url.Values) ([]models.Restaurant, error) {
	var out []models.Restaurant
	err := c.do(ctx, http.MethodGet, "restaurants", params, nil, &out)
	return out, err
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (models.Restaurant, error) {
	var out models.Restaurant
	err := c.do(ctx, http.MethodGet, "restaurants/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateRestaurant(ctx context.Context, r models.Restaurant) (models.Restaurant, error) {
	var out models.Restaurant
	err := c.do(ctx, http.MethodPost, "restaurants", nil, r, &out)
	return out, err
}

func (c *Client) UpdateRestaurant(ctx context.Context, id string, r models.Restaurant) (models.Restaurant, error) {
	var out models.Restaurant
	err := c.do(ctx, http.MethodPut, "restaurants/"+url.PathEscape(id), nil, r, &out)
	return out, err
}

func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "restaurants/"+url.PathEscape(id), nil, nil, nil)
}
