package tracking

import (
	"context"
	"errors"
	"time"

	"food-storefront/apiclient"
	"food-storefront/models"

	"github.com/rs/zerolog"
)

// Update reports the stage an order has reached.
type Update struct {
	Stage     int
	Cancelled bool
}

// Subject identifies the order being followed.
type Subject struct {
	OrderID       string
	ServerOrderID string
	Token         string
}

// StatusSource drives a viewer. Follow blocks until the order reaches a
// terminal stage or ctx is done.
type StatusSource interface {
	Follow(ctx context.Context, s Subject, report func(Update)) error
}

// TickerSource advances one stage per Interval.
type TickerSource struct {
	Interval time.Duration
}

func (t TickerSource) Follow(ctx context.Context, _ Subject, report func(Update)) error {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for stage := 0; stage < LastStage; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stage++
			report(Update{Stage: stage})
		}
	}
	return nil
}

var ErrNoServerOrder = errors.New("order has no server id to poll")

// PollSource reads the order status from GET /orders/:id.
type PollSource struct {
	Client   *apiclient.Client
	Interval time.Duration
	Log      zerolog.Logger
}

func (p PollSource) Follow(ctx context.Context, s Subject, report func(Update)) error {
	if s.ServerOrderID == "" {
		return ErrNoServerOrder
	}
	client := p.Client.WithToken(s.Token)
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	last := -1
	for {
		order, err := client.GetOrder(ctx, s.ServerOrderID)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			p.Log.Warn().Err(err).Str("order_id", s.OrderID).Msg("poll order status")
		case order.Status == models.StatusCancelled:
			report(Update{Stage: max(last, 0), Cancelled: true})
			return nil
		default:
			if stage := StageForStatus(order.Status); stage != last {
				last = stage
				report(Update{Stage: stage})
			}
			if order.Status == models.StatusDelivered {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// StageForStatus maps a server order status onto the tracking stages. Server
// statuses have no "on the way" step, so a ready order shows as ready until
// it is delivered.
func StageForStatus(s models.OrderStatus) int {
	switch s {
	case models.StatusPreparing:
		return 1
	case models.StatusReady:
		return 2
	case models.StatusDelivered:
		return LastStage
	}
	return 0
}
