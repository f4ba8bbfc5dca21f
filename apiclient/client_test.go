package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"food-storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", srv.Client())
	require.NoError(t, err)
	return c
}

func TestBearerTokenInjectedWhenPresent(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.Restaurant{})
	})

	_, err := c.ListRestaurants(context.Background(), nil)
	require.NoError(t, err)
	_, err = c.WithToken("tok-1").ListRestaurants(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer tok-1"}, got)
}

func TestPathsResolveUnderBase(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		query  string
	}{
		{"restaurants with filter", func(c *Client) error {
			_, err := c.ListRestaurants(context.Background(), url.Values{"cuisine": {"Indian"}})
			return err
		}, http.MethodGet, "/api/restaurants", "cuisine=Indian"},
		{"menu by restaurant", func(c *Client) error {
			_, err := c.MenuByRestaurant(context.Background(), "r1")
			return err
		}, http.MethodGet, "/api/menu/restaurant/r1", ""},
		{"user bookings", func(c *Client) error {
			_, err := c.UserBookings(context.Background(), "u1")
			return err
		}, http.MethodGet, "/api/bookings/user/u1", ""},
		{"order status", func(c *Client) error {
			_, err := c.UpdateOrderStatus(context.Background(), "o1", models.StatusReady)
			return err
		}, http.MethodPut, "/api/orders/o1/status", ""},
		{"booking status", func(c *Client) error {
			_, err := c.UpdateBookingStatus(context.Background(), "b1", models.BookingConfirmed)
			return err
		}, http.MethodPut, "/api/bookings/b1/status", ""},
		{"delete menu item", func(c *Client) error {
			return c.DeleteMenuItem(context.Background(), "m1")
		}, http.MethodDelete, "/api/menu/m1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var method, path, query string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				method, path, query = r.Method, r.URL.Path, r.URL.RawQuery
				_, _ = w.Write([]byte(`{}`))
			})
			_ = tt.call(c)
			assert.Equal(t, tt.method, method)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.query, query)
		})
	}
}

func TestCreateOrderSendsBody(t *testing.T) {
	var body CreateOrderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"srv-9","status":"pending","totalAmount":569.2,"items":[]}`))
	})

	order, err := c.WithToken("t").CreateOrder(context.Background(), CreateOrderRequest{
		Items:         []models.OrderItem{{MenuItem: "1", Name: "Biryani", Quantity: 2, Price: decimal.NewFromInt(350)}},
		TotalAmount:   decimal.RequireFromString("569.2"),
		OrderType:     models.OrderPickup,
		PaymentMethod: models.PayUPI,
		CustomerName:  "Asha",
	})
	require.NoError(t, err)

	assert.Equal(t, "srv-9", order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("569.2")))
	assert.Equal(t, models.OrderPickup, body.OrderType)
	assert.Equal(t, 2, body.Items[0].Quantity)
}

func TestErrorBodiesDecoded(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", http.StatusUnauthorized, `{"error":"token expired"}`, "token expired"},
		{"no body", http.StatusNotFound, ``, "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestNoContentIgnoresBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.DeleteRestaurant(context.Background(), "r1"))
}
