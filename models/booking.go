package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              string        `json:"_id,omitempty"`
	Restaurant      string        `json:"restaurant"`
	RestaurantName  string        `json:"restaurantName,omitempty"`
	User            string        `json:"user,omitempty"`
	Date            string        `json:"date" binding:"required"`
	Time            string        `json:"time" binding:"required"`
	Guests          int           `json:"guests" binding:"required,min=1,max=20"`
	CustomerName    string        `json:"customerName" binding:"required"`
	CustomerPhone   string        `json:"customerPhone" binding:"required"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Status          BookingStatus `json:"status,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
}
