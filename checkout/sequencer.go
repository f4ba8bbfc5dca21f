// Package checkout walks a profile through the order wizard (details,
// address, payment) and places the order.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"food-storefront/cart"
	"food-storefront/events"
	"food-storefront/models"
	"food-storefront/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultETA            = 35 * time.Minute
	// DefaultPublishTimeout bounds one order-placed publish.
	DefaultPublishTimeout = 5 * time.Second
)

// State is persisted under storage.KeyCheckout between requests.
type State struct {
	Stage Stage             `json:"stage"`
	Draft models.OrderDraft `json:"draft"`
}

// View is everything the checkout page renders.
type View struct {
	Stage         Stage                `json:"stage"`
	Draft         models.OrderDraft    `json:"draft"`
	Cart          models.Cart          `json:"cart"`
	Bill          models.BillBreakdown `json:"bill"`
	PromoApplied  bool                 `json:"promoApplied"`
	DeliverySlots []string             `json:"deliverySlots"`
	TipPresets    []decimal.Decimal    `json:"tipPresets"`
	EstimatedTime time.Time            `json:"estimatedTime"`
	Submitting    bool                 `json:"submitting"`
}

type DetailsForm struct {
	OrderType     models.OrderType `json:"orderType"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	CustomerEmail string           `json:"customerEmail"`
	DeliverySlot  string           `json:"deliverySlot"`
}

type AddressForm struct {
	DeliveryAddress     models.Address `json:"deliveryAddress"`
	SpecialInstructions string         `json:"specialInstructions"`
}

type PaymentForm struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TipAmount     decimal.Decimal      `json:"tipAmount"`
}

type Option func(*Sequencer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

func WithETA(d time.Duration) Option {
	return func(s *Sequencer) { s.eta = d }
}

func WithPublishTimeout(d time.Duration) Option {
	return func(s *Sequencer) { s.publishTimeout = d }
}

// WithPlacementLimit caps concurrent placements across all profiles.
func WithPlacementLimit(n int64) Option {
	return func(s *Sequencer) { s.slots = semaphore.NewWeighted(n) }
}

type Sequencer struct {
	carts     *cart.Service
	placer    Placer
	publisher events.Publisher
	log       zerolog.Logger
	validate  *validator.Validate
	ids       *IDGenerator
	now       func() time.Time
	eta       time.Duration
	slots     *semaphore.Weighted

	publishTimeout time.Duration
	publishing     sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

func New(carts *cart.Service, placer Placer, publisher events.Publisher, log zerolog.Logger, opts ...Option) *Sequencer {
	s := &Sequencer{
		carts:     carts,
		placer:    placer,
		publisher: publisher,
		log:       log,
		validate:  newValidator(),
		ids:       &IDGenerator{},
		now:       time.Now,
		eta:       DefaultETA,
		slots:     semaphore.NewWeighted(16),
		inFlight:  make(map[string]bool),

		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	return s
}

// Enter opens the wizard. An empty cart yields StageEmpty and nothing is
// written; otherwise a fresh draft is started if none is in progress.
func (s *Sequencer) Enter(ctx context.Context, profile string) (View, error) {
	var v View
	err := s.carts.With(ctx, profile, func(e *cart.Engine) error {
		st, err := s.load(ctx, e)
		if err != nil {
			return err
		}
		if e.Cart().IsEmpty() {
			v = s.view(profile, e, State{Stage: StageEmpty, Draft: st.Draft})
			return nil
		}
		if err := s.save(ctx, e, st); err != nil {
			return err
		}
		v = s.view(profile, e, st)
		return nil
	})
	return v, err
}

func (s *Sequencer) SaveDetails(ctx context.Context, profile string, f DetailsForm) (View, error) {
	return s.update(ctx, profile, func(st *State) error {
		if st.Stage != StageDetails {
			return fmt.Errorf("save details at %s: %w", st.Stage, ErrInvalidTransition)
		}
		st.Draft.OrderType = f.OrderType
		st.Draft.CustomerName = f.CustomerName
		st.Draft.CustomerPhone = f.CustomerPhone
		st.Draft.CustomerEmail = f.CustomerEmail
		st.Draft.DeliverySlot = f.DeliverySlot
		return nil
	})
}

func (s *Sequencer) SaveAddress(ctx context.Context, profile string, f AddressForm) (View, error) {
	return s.update(ctx, profile, func(st *State) error {
		if st.Stage != StageAddress {
			return fmt.Errorf("save address at %s: %w", st.Stage, ErrInvalidTransition)
		}
		st.Draft.DeliveryAddress = f.DeliveryAddress
		st.Draft.SpecialInstructions = f.SpecialInstructions
		return nil
	})
}

func (s *Sequencer) SavePayment(ctx context.Context, profile string, f PaymentForm) (View, error) {
	return s.update(ctx, profile, func(st *State) error {
		if st.Stage != StagePayment {
			return fmt.Errorf("save payment at %s: %w", st.Stage, ErrInvalidTransition)
		}
		st.Draft.PaymentMethod = f.PaymentMethod
		st.Draft.TipAmount = f.TipAmount
		return nil
	})
}

// Next validates the current stage and moves forward. The payment stage is
// left through Submit only.
func (s *Sequencer) Next(ctx context.Context, profile string) (View, error) {
	return s.update(ctx, profile, func(st *State) error {
		to, ok := st.Stage.next()
		if !ok {
			return fmt.Errorf("next from %s: %w", st.Stage, ErrInvalidTransition)
		}
		if err := checkStage(s.validate, st.Stage, st.Draft); err != nil {
			return err
		}
		st.Stage = to
		return nil
	})
}

func (s *Sequencer) Back(ctx context.Context, profile string) (View, error) {
	return s.update(ctx, profile, func(st *State) error {
		to, ok := st.Stage.prev()
		if !ok {
			return fmt.Errorf("back from %s: %w", st.Stage, ErrInvalidTransition)
		}
		st.Stage = to
		return nil
	})
}

// Submit places the order. It runs to completion even if ctx is cancelled
// while the placer is working; the caller then only misses the result. On
// failure cart and draft are left as they were. The order-placed event is
// published after the result is delivered and never delays it.
func (s *Sequencer) Submit(ctx context.Context, profile string) (models.OrderRecord, error) {
	if !s.begin(profile) {
		return models.OrderRecord{}, ErrSubmissionInFlight
	}

	p, err := s.snapshot(ctx, profile)
	if err != nil {
		s.end(profile)
		return models.OrderRecord{}, err
	}
	if err := s.slots.Acquire(ctx, 1); err != nil {
		s.end(profile)
		return models.OrderRecord{}, err
	}

	type result struct {
		rec models.OrderRecord
		err error
	}
	done := make(chan result, 1)
	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()
		bg := context.WithoutCancel(ctx)
		rec, err := s.complete(bg, profile, p)
		s.slots.Release(1)
		s.end(profile)
		done <- result{rec, err}
		if err == nil {
			s.publish(bg, profile, p, rec)
		}
	}()

	select {
	case r := <-done:
		return r.rec, r.err
	case <-ctx.Done():
		s.log.Warn().Str("profile", profile).Str("order_id", p.Record.OrderID).
			Msg("caller left before order placement finished")
		return models.OrderRecord{}, ctx.Err()
	}
}

// Submitting reports whether the profile has a placement in flight.
func (s *Sequencer) Submitting(profile string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[profile]
}

// Wait blocks until every started submission has finished publishing.
func (s *Sequencer) Wait() { s.publishing.Wait() }

// ConfirmationPath is where the client goes after a successful Submit.
func ConfirmationPath(orderID string) string {
	return "/order-confirmation/" + orderID
}

func (s *Sequencer) snapshot(ctx context.Context, profile string) (Placement, error) {
	var p Placement
	err := s.carts.With(ctx, profile, func(e *cart.Engine) error {
		st, err := s.load(ctx, e)
		if err != nil {
			return err
		}
		c := e.Cart()
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		if st.Stage != StagePayment {
			return fmt.Errorf("submit at %s: %w", st.Stage, ErrInvalidTransition)
		}
		for _, stage := range stageOrder {
			if err := checkStage(s.validate, stage, st.Draft); err != nil {
				return err
			}
		}

		draft := st.Draft
		draft.PromoCode = c.PromoCode
		if draft.OrderType != models.OrderDelivery {
			draft.DeliveryAddress = models.Address{}
		}
		now := s.now()
		p.Record = models.OrderRecord{
			OrderID:       s.ids.Next(now),
			OrderDraft:    draft,
			Items:         c.Items,
			Totals:        e.ComputeBill(draft.OrderType, draft.TipAmount),
			EstimatedTime: now.Add(s.eta),
			PlacedAt:      now,
		}

		sess := e.Session()
		if u, ok, err := storage.Lookup[models.User](ctx, sess, storage.KeyUser); err != nil {
			return err
		} else if ok {
			p.User = &u
		}
		token, _, err := storage.Lookup[string](ctx, sess, storage.KeyToken)
		if err != nil {
			return err
		}
		p.Token = token
		return nil
	})
	return p, err
}

func (s *Sequencer) complete(ctx context.Context, profile string, p Placement) (models.OrderRecord, error) {
	log := s.log.With().Str("profile", profile).Str("order_id", p.Record.OrderID).Logger()

	rec, err := s.placer.Place(ctx, p)
	if err != nil {
		log.Error().Err(err).Msg("order placement failed")
		return models.OrderRecord{}, fmt.Errorf("place order: %w", err)
	}

	err = s.carts.With(ctx, profile, func(e *cart.Engine) error {
		sess := e.Session()
		if err := sess.SetJSON(ctx, storage.KeyLastOrder, rec); err != nil {
			return err
		}
		if err := e.Clear(ctx); err != nil {
			return err
		}
		return sess.Delete(ctx, storage.KeyCheckout)
	})
	if err != nil {
		log.Error().Err(err).Msg("order placed but local state not updated")
		return models.OrderRecord{}, fmt.Errorf("store order: %w", err)
	}
	log.Info().Str("total", rec.Totals.Total.StringFixed(2)).Msg("order placed")
	return rec, nil
}

func (s *Sequencer) publish(ctx context.Context, profile string, p Placement, rec models.OrderRecord) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	ev := events.OrderPlaced{
		OrderID:       rec.OrderID,
		ServerOrderID: rec.ServerOrderID,
		Profile:       profile,
		OrderType:     string(rec.OrderType),
		Total:         rec.Totals.Total,
		PlacedAt:      rec.PlacedAt,
	}
	for _, l := range rec.Items {
		ev.ItemCount += l.Quantity
	}
	if p.User != nil {
		ev.UserID = p.User.ID
	}
	if err := s.publisher.PublishOrderPlaced(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("profile", profile).Str("order_id", rec.OrderID).
			Msg("order placed event not published")
	}
}

func (s *Sequencer) update(ctx context.Context, profile string, fn func(*State) error) (View, error) {
	var v View
	err := s.carts.With(ctx, profile, func(e *cart.Engine) error {
		if e.Cart().IsEmpty() {
			return ErrEmptyCart
		}
		st, err := s.load(ctx, e)
		if err != nil {
			return err
		}
		if err := fn(&st); err != nil {
			return err
		}
		if err := s.save(ctx, e, st); err != nil {
			return err
		}
		v = s.view(profile, e, st)
		return nil
	})
	return v, err
}

func (s *Sequencer) load(ctx context.Context, e *cart.Engine) (State, error) {
	sess := e.Session()
	st, ok, err := storage.Lookup[State](ctx, sess, storage.KeyCheckout)
	if err != nil {
		return State{}, fmt.Errorf("load checkout: %w", err)
	}
	if ok && st.Stage != StageEmpty && st.Stage != "" {
		return st, nil
	}
	var user *models.User
	if u, found, err := storage.Lookup[models.User](ctx, sess, storage.KeyUser); err != nil {
		return State{}, err
	} else if found {
		user = &u
	}
	return State{Stage: StageDetails, Draft: models.NewOrderDraft(user)}, nil
}

func (s *Sequencer) save(ctx context.Context, e *cart.Engine, st State) error {
	return e.Session().SetJSON(ctx, storage.KeyCheckout, st)
}

func (s *Sequencer) view(profile string, e *cart.Engine, st State) View {
	c := e.Cart()
	draft := st.Draft
	draft.PromoCode = c.PromoCode
	return View{
		Stage:         st.Stage,
		Draft:         draft,
		Cart:          c,
		Bill:          e.ComputeBill(draft.OrderType, draft.TipAmount),
		PromoApplied:  e.PromoApplied(),
		DeliverySlots: DeliverySlots,
		TipPresets:    TipPresets,
		EstimatedTime: s.now().Add(s.eta),
		Submitting:    s.Submitting(profile),
	}
}

func (s *Sequencer) begin(profile string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[profile] {
		return false
	}
	s.inFlight[profile] = true
	return true
}

func (s *Sequencer) end(profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profile)
}
