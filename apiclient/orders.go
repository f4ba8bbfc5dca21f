package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"food-storefront/models"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	RestaurantID        string               `json:"restaurantId,omitempty"`
	Items               []models.OrderItem   `json:"items"`
	TotalAmount         decimal.Decimal      `json:"totalAmount"`
	OrderType           models.OrderType     `json:"orderType"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod"`
	DeliveryAddress     *models.Address      `json:"deliveryAddress,omitempty"`
	SpecialInstructions string               `json:"specialInstructions,omitempty"`
	CustomerName        string               `json:"customerName"`
	CustomerPhone       string               `json:"customerPhone"`
	CustomerEmail       string               `json:"customerEmail"`
	DeliverySlot        string               `json:"deliverySlot,omitempty"`
	PromoCode           string               `json:"promoCode,omitempty"`
	TipAmount           decimal.Decimal      `json:"tipAmount"`
}

func (c *Client) CreateOrder(ctx context.Context, r CreateOrderRequest) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, http.MethodPost, "orders", nil, r, &out)
	return out, err
}

func (c *Client) UserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, http.MethodGet, "orders/user/"+url.PathEscape(userID), nil, nil, &out)
	return out, err
}

func (c *Client) AllOrders(ctx context.Context, params url.Values) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, http.MethodGet, "orders", params, nil, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	var out models.Order
	body := map[string]models.OrderStatus{"status": status}
	err := c.do(ctx, http.MethodPut, "orders/"+url.PathEscape(id)+"/status", nil, body, &out)
	return out, err
}
