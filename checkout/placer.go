package checkout

import (
	"context"
	"fmt"
	"time"

	"food-storefront/apiclient"
	"food-storefront/models"
)

// Placement is what a Placer receives: the finished record plus who is
// ordering.
type Placement struct {
	Record models.OrderRecord
	User   *models.User
	Token  string
}

type Placer interface {
	Place(ctx context.Context, p Placement) (models.OrderRecord, error)
}

// SimulatedPlacer accepts every order after Delay.
type SimulatedPlacer struct {
	Delay time.Duration
}

func (s SimulatedPlacer) Place(ctx context.Context, p Placement) (models.OrderRecord, error) {
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return models.OrderRecord{}, ctx.Err()
	case <-t.C:
		return p.Record, nil
	}
}

// APIPlacer creates the order through POST /orders.
type APIPlacer struct {
	Client *apiclient.Client
}

func (a APIPlacer) Place(ctx context.Context, p Placement) (models.OrderRecord, error) {
	rec := p.Record
	order, err := a.Client.WithToken(p.Token).CreateOrder(ctx, createOrderRequest(rec))
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("create order: %w", err)
	}
	rec.ServerOrderID = order.ID
	return rec, nil
}

func createOrderRequest(rec models.OrderRecord) apiclient.CreateOrderRequest {
	req := apiclient.CreateOrderRequest{
		TotalAmount:         rec.Totals.Total,
		OrderType:           rec.OrderType,
		PaymentMethod:       rec.PaymentMethod,
		SpecialInstructions: rec.SpecialInstructions,
		CustomerName:        rec.CustomerName,
		CustomerPhone:       rec.CustomerPhone,
		CustomerEmail:       rec.CustomerEmail,
		DeliverySlot:        rec.DeliverySlot,
		PromoCode:           rec.PromoCode,
		TipAmount:           rec.TipAmount,
	}
	if rec.OrderType == models.OrderDelivery {
		addr := rec.DeliveryAddress
		req.DeliveryAddress = &addr
	}
	for _, l := range rec.Items {
		if req.RestaurantID == "" {
			req.RestaurantID = l.MenuItem.RestaurantID
		}
		req.Items = append(req.Items, models.OrderItem{
			MenuItem: l.MenuItem.ID,
			Name:     l.MenuItem.Name,
			Quantity: l.Quantity,
			Price:    l.MenuItem.Price,
		})
	}
	return req
}
