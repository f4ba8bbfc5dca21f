package statemachine

import (
	"testing"

	"food-storefront/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		actor    Actor
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, ActorAdmin, true},
		{models.StatusConfirmed, models.StatusPreparing, ActorAdmin, true},
		{models.StatusPreparing, models.StatusReady, ActorAdmin, true},
		{models.StatusReady, models.StatusDelivered, ActorAdmin, true},
		{models.StatusConfirmed, models.StatusCancelled, ActorCustomer, true},
		{models.StatusPending, models.StatusPreparing, ActorAdmin, false},
		{models.StatusPreparing, models.StatusCancelled, ActorAdmin, false},
		{models.StatusPending, models.StatusConfirmed, ActorCustomer, false},
		{models.StatusDelivered, models.StatusPending, ActorAdmin, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to)+"/"+string(tt.actor), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, ValidTransitionsFrom(models.StatusPending))
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))

	err := CanTransition(models.StatusDelivered, models.StatusReady, ActorAdmin)
	assert.Contains(t, err.Error(), "none (terminal state)")
	assert.Len(t, GetAllTransitions(), 8)
}

func TestBookingTransitions(t *testing.T) {
	assert.NoError(t, CanTransitionBooking(models.BookingPending, models.BookingConfirmed, ActorAdmin))
	assert.NoError(t, CanTransitionBooking(models.BookingConfirmed, models.BookingCancelled, ActorAdmin))
	assert.NoError(t, CanTransitionBooking(models.BookingCancelled, models.BookingConfirmed, ActorAdmin))
	assert.ErrorIs(t, CanTransitionBooking(models.BookingCancelled, models.BookingConfirmed, ActorCustomer), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransitionBooking(models.BookingCancelled, models.BookingPending, ActorAdmin), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransitionBooking(models.BookingConfirmed, models.BookingCancelled, ActorCustomer), ErrInvalidTransition)
	assert.Equal(t,
		[]models.BookingStatus{models.BookingConfirmed, models.BookingCancelled},
		ValidBookingTransitionsFrom(models.BookingPending))
}
