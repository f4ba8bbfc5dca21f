// Package catalog supplies restaurants and their menus, either from the
// built-in sample data or from the REST API.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"food-storefront/apiclient"
	"food-storefront/models"
)

var ErrNotFound = errors.New("catalog: not found")

type Source interface {
	Restaurants(ctx context.Context) ([]models.Restaurant, error)
	Restaurant(ctx context.Context, id string) (models.Restaurant, error)
	Menu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	MenuItem(ctx context.Context, restaurantID, itemID string) (models.MenuItem, error)
}

// API reads the catalog from the REST API.
type API struct {
	Client *apiclient.Client
}

func NewAPI(c *apiclient.Client) *API { return &API{Client: c} }

func (a *API) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	return a.Client.ListRestaurants(ctx, nil)
}

func (a *API) Restaurant(ctx context.Context, id string) (models.Restaurant, error) {
	r, err := a.Client.GetRestaurant(ctx, id)
	if apiclient.IsNotFound(err) {
		return r, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	return r, err
}

func (a *API) Menu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items, err := a.Client.MenuByRestaurant(ctx, restaurantID)
	if apiclient.IsNotFound(err) {
		return nil, fmt.Errorf("menu %s: %w", restaurantID, ErrNotFound)
	}
	return items, err
}

func (a *API) MenuItem(ctx context.Context, restaurantID, itemID string) (models.MenuItem, error) {
	item, err := a.Client.GetMenuItem(ctx, itemID)
	if apiclient.IsNotFound(err) {
		return item, fmt.Errorf("menu item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return item, err
	}
	if item.RestaurantID != "" && item.RestaurantID != restaurantID {
		return models.MenuItem{}, fmt.Errorf("menu item %s at restaurant %s: %w", itemID, restaurantID, ErrNotFound)
	}
	return item, nil
}
