package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"food-storefront/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Actor string

const (
	ActorAdmin    Actor = "admin"
	ActorCustomer Actor = "customer"
)

// Transition defines a valid state change and who can perform it
type Transition[S ~string] struct {
	From  S     `json:"from"`
	To    S     `json:"to"`
	Actor Actor `json:"actor"`
}

type transitionKey[S ~string] struct {
	From  S
	To    S
	Actor Actor
}

// table is a status machine with O(1) lookups.
type table[S ~string] struct {
	transitions []Transition[S]
	index       map[transitionKey[S]]bool
}

func newTable[S ~string](ts []Transition[S]) table[S] {
	m := make(map[transitionKey[S]]bool, len(ts))
	for _, t := range ts {
		m[transitionKey[S]{t.From, t.To, t.Actor}] = true
	}
	return table[S]{transitions: ts, index: m}
}

func (t table[S]) validFrom(status S) []S {
	var nexts []S
	seen := map[S]bool{}
	for _, tr := range t.transitions {
		if tr.From == status && !seen[tr.To] {
			nexts = append(nexts, tr.To)
			seen[tr.To] = true
		}
	}
	return nexts
}

func (t table[S]) check(from, to S, actor Actor) error {
	if t.index[transitionKey[S]{from, to, actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s; valid transitions from %s: %s",
		ErrInvalidTransition, from, to, actor, from, describe(t.validFrom(from)))
}

func describe[S ~string](nexts []S) string {
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

var orders = newTable([]Transition[models.OrderStatus]{
	// Kitchen progress, driven from the admin dashboard
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorAdmin},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: ActorAdmin},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: ActorAdmin},
	// Cancellation is only possible before the kitchen starts
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorCustomer},
})

// ValidTransitionsFrom returns all valid next order statuses
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	return orders.validFrom(status)
}

// CanTransition checks if actor may move an order from one status to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	return orders.check(from, to, actor)
}

// GetAllTransitions returns the order state machine for documentation
func GetAllTransitions() []Transition[models.OrderStatus] {
	return orders.transitions
}
