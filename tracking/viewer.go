// Package tracking shows the progress of a placed order through five fixed
// stages. Progress comes from a pluggable StatusSource.
package tracking

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

var steps = [...]Step{
	{Title: "Order Confirmed", Description: "Your order has been placed successfully"},
	{Title: "Preparing", Description: "Restaurant is preparing your food"},
	{Title: "Ready for Pickup", Description: "Food is ready, delivery partner assigned"},
	{Title: "On the Way", Description: "Your order is on its way to you"},
	{Title: "Delivered", Description: "Order delivered successfully"},
}

const LastStage = len(steps) - 1

type Progress struct {
	OrderID     string `json:"orderId"`
	CurrentStep int    `json:"currentStep"`
	Cancelled   bool   `json:"cancelled"`
	Finished    bool   `json:"finished"`
	Steps       []Step `json:"steps"`
}

// Viewer follows one order. Stage 0 is complete from the start and the
// current stage never moves backwards.
type Viewer struct {
	subject Subject
	log     zerolog.Logger

	mu        sync.Mutex
	current   int
	cancelled bool
	finished  bool

	cancel context.CancelFunc
	done   chan struct{}
}

func Start(ctx context.Context, src StatusSource, s Subject, log zerolog.Logger) *Viewer {
	ctx, cancel := context.WithCancel(ctx)
	v := &Viewer{
		subject: s,
		log:     log.With().Str("order_id", s.OrderID).Logger(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go v.run(ctx, src)
	return v
}

func (v *Viewer) run(ctx context.Context, src StatusSource) {
	defer close(v.done)
	err := src.Follow(ctx, v.subject, v.report)
	switch {
	case err == nil:
		v.mu.Lock()
		v.finished = true
		v.mu.Unlock()
	case errors.Is(err, context.Canceled):
	default:
		v.log.Warn().Err(err).Msg("order tracking stopped")
	}
}

func (v *Viewer) report(u Update) {
	v.mu.Lock()
	defer v.mu.Unlock()
	stage := min(max(u.Stage, 0), LastStage)
	if stage > v.current {
		v.current = stage
	}
	if u.Cancelled {
		v.cancelled = true
	}
}

func (v *Viewer) Progress() Progress {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := Progress{
		OrderID:     v.subject.OrderID,
		CurrentStep: v.current,
		Cancelled:   v.cancelled,
		Finished:    v.finished,
		Steps:       make([]Step, len(steps)),
	}
	for i, s := range steps {
		s.Completed = i <= v.current
		p.Steps[i] = s
	}
	return p
}

// Stop cancels the source and waits for it to return.
func (v *Viewer) Stop() {
	v.cancel()
	<-v.done
}

func (v *Viewer) Done() <-chan struct{} { return v.done }
