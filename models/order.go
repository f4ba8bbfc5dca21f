package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
	OrderDineIn   OrderType = "dine-in"
)

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayUPI    PaymentMethod = "upi"
	PayWallet PaymentMethod = "wallet"
)

type Address struct {
	Street   string `json:"street" validate:"required"`
	Landmark string `json:"landmark"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required"`
	Phone    string `json:"phone"`
}

// OrderDraft is assembled across the checkout stages.
type OrderDraft struct {
	OrderType           OrderType       `json:"orderType"`
	CustomerName        string          `json:"customerName"`
	CustomerPhone       string          `json:"customerPhone"`
	CustomerEmail       string          `json:"customerEmail"`
	PaymentMethod       PaymentMethod   `json:"paymentMethod"`
	DeliveryAddress     Address         `json:"deliveryAddress"`
	SpecialInstructions string          `json:"specialInstructions"`
	DeliverySlot        string          `json:"deliverySlot"`
	PromoCode           string          `json:"promoCode"`
	TipAmount           decimal.Decimal `json:"tipAmount"`
}

// NewOrderDraft returns a draft with the storefront defaults.
func NewOrderDraft(user *User) OrderDraft {
	d := OrderDraft{
		OrderType:     OrderDelivery,
		PaymentMethod: PayCash,
		DeliveryAddress: Address{
			City:  "Coimbatore",
			State: "Tamil Nadu",
		},
		TipAmount: decimal.Zero,
	}
	if user != nil {
		d.CustomerName = user.Name
		d.CustomerEmail = user.Email
	}
	return d
}

type BillBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Tip         decimal.Decimal `json:"tip"`
	Total       decimal.Decimal `json:"total"`
}

// OrderRecord is the snapshot stored under `lastOrder` at submission.
type OrderRecord struct {
	OrderID string `json:"orderId"`
	// ServerOrderID is set when the order was placed through the API.
	ServerOrderID string `json:"serverOrderId,omitempty"`
	OrderDraft
	Items         []CartLine    `json:"items"`
	Totals        BillBreakdown `json:"totals"`
	EstimatedTime time.Time     `json:"estimatedTime"`
	PlacedAt      time.Time     `json:"placedAt"`
}

// OrderStatus is the server-side status of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	MenuItem string          `json:"menuItem"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is the server representation returned by /orders.
type Order struct {
	ID              string          `json:"_id"`
	User            string          `json:"user,omitempty"`
	RestaurantID    string          `json:"restaurantId,omitempty"`
	RestaurantName  string          `json:"restaurantName,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	OrderType       OrderType       `json:"orderType,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod,omitempty"`
	DeliveryAddress *Address        `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
