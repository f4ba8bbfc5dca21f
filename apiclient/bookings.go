package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"food-storefront/models"
)

func (c *Client) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	var out models.Booking
	err := c.do(ctx, http.MethodPost, "bookings", nil, b, &out)
	return out, err
}

func (c *Client) UserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	err := c.do(ctx, http.MethodGet, "bookings/user/"+url.PathEscape(userID), nil, nil, &out)
	return out, err
}

func (c *Client) AllBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := c.do(ctx, http.MethodGet, "bookings", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	var out models.Booking
	body := map[string]models.BookingStatus{"status": status}
	err := c.do(ctx, http.MethodPut, "bookings/"+url.PathEscape(id)+"/status", nil, body, &out)
	return out, err
}
