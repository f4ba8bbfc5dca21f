package statemachine

import "food-storefront/models"

var bookings = newTable([]Transition[models.BookingStatus]{
	{From: models.BookingPending, To: models.BookingConfirmed, Actor: ActorAdmin},
	{From: models.BookingPending, To: models.BookingCancelled, Actor: ActorAdmin},
	{From: models.BookingConfirmed, To: models.BookingCancelled, Actor: ActorAdmin},
	// admins may reinstate a cancelled booking
	{From: models.BookingCancelled, To: models.BookingConfirmed, Actor: ActorAdmin},
	{From: models.BookingPending, To: models.BookingCancelled, Actor: ActorCustomer},
})

func ValidBookingTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	return bookings.validFrom(status)
}

func CanTransitionBooking(from, to models.BookingStatus, actor Actor) error {
	return bookings.check(from, to, actor)
}

func GetAllBookingTransitions() []Transition[models.BookingStatus] {
	return bookings.transitions
}
