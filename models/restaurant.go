package models

import "github.com/shopspring/decimal"

type Restaurant struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Image        string          `json:"image,omitempty"`
	Cuisine      string          `json:"cuisine"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"reviewCount,omitempty"`
	DeliveryTime string          `json:"deliveryTime,omitempty"` // e.g. "25-35 mins"
	Location     string          `json:"location"`
	Distance     string          `json:"distance,omitempty"` // e.g. "2.1 km"
	Offers       []string        `json:"offers,omitempty"`
	IsOpen       bool            `json:"isOpen"`
	IsVeg        bool            `json:"isVeg"`
	Specialities []string        `json:"specialities,omitempty"`
	PriceRange   string          `json:"priceRange,omitempty"` // budget, mid, premium
	AvgCost      decimal.Decimal `json:"avgCost"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	MinOrder     decimal.Decimal `json:"minOrder"`
	Description  string          `json:"description,omitempty"`
	Featured     bool            `json:"featured,omitempty"`
}

// MenuItem is copied by value into cart lines and never mutated there.
type MenuItem struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category,omitempty"`
	IsVeg        bool            `json:"isVeg"`
	IsAvailable  bool            `json:"isAvailable"`
	Image        string          `json:"image,omitempty"`
	Restaurant   string          `json:"restaurant,omitempty"`
	RestaurantID string          `json:"restaurantId,omitempty"`
}
