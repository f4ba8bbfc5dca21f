// Package cart keeps the shopping cart of a profile consistent: line items,
// the derived total and the applied promo code.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"food-storefront/models"
	"food-storefront/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart line not found")

// Engine owns one profile's cart for the duration of an operation. Every
// mutation recomputes the total and writes the cart back to the session.
type Engine struct {
	sess    *storage.Session
	catalog *Catalog
	log     zerolog.Logger

	cart     models.Cart
	promo    *models.PromoCode
	discount decimal.Decimal
}

// Load reads the persisted cart. A promo stored with the cart is re-resolved
// against the catalog and dropped if it no longer applies.
func Load(ctx context.Context, sess *storage.Session, catalog *Catalog, log zerolog.Logger) (*Engine, error) {
	e := &Engine{sess: sess, catalog: catalog, log: log, discount: decimal.Zero}

	stored, ok, err := storage.Lookup[models.Cart](ctx, sess, storage.KeyCart)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if ok {
		e.cart = stored
	}
	if e.cart.Items == nil {
		e.cart.Items = []models.CartLine{}
	}
	if code := e.cart.PromoCode; code != "" {
		if p, found := catalog.Lookup(code); found {
			e.promo = &p
		} else {
			log.Warn().Str("code", code).Msg("stored promo code no longer in catalog")
		}
	}
	e.reconcile()
	return e, nil
}

func (e *Engine) Session() *storage.Session { return e.sess }

// Cart returns a copy of the current cart.
func (e *Engine) Cart() models.Cart { return e.cart.Clone() }

func (e *Engine) Subtotal() decimal.Decimal { return e.cart.TotalAmount }

func (e *Engine) Discount() decimal.Decimal { return e.discount }

func (e *Engine) PromoApplied() bool { return e.promo != nil }

func (e *Engine) AppliedPromo() (models.PromoCode, bool) {
	if e.promo == nil {
		return models.PromoCode{}, false
	}
	return *e.promo, true
}

// QuantityOf sums the quantity of every line holding the menu item.
func (e *Engine) QuantityOf(menuItemID string) int {
	n := 0
	for _, l := range e.cart.Items {
		if l.MenuItem.ID == menuItemID {
			n += l.Quantity
		}
	}
	return n
}

// AddItem adds one unit of item. A line for the same menu item with the same
// customizations is incremented; otherwise a new line is appended.
func (e *Engine) AddItem(ctx context.Context, item models.MenuItem, customizations ...string) (models.CartLine, error) {
	for i, l := range e.cart.Items {
		if l.MenuItem.ID == item.ID && slices.Equal(l.Customizations, customizations) {
			e.cart.Items[i].Quantity++
			line := e.cart.Items[i]
			return line, e.commit(ctx)
		}
	}
	line := models.CartLine{
		ID:             uuid.NewString(),
		MenuItem:       item,
		Quantity:       1,
		Customizations: append([]string{}, customizations...),
	}
	e.cart.Items = append(e.cart.Items, line)
	e.log.Debug().Str("line_id", line.ID).Str("menu_item", item.ID).Msg("cart line added")
	return line, e.commit(ctx)
}

// UpdateQuantity sets the quantity of a line; a quantity of zero or less
// removes it.
func (e *Engine) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(ctx, lineID)
	}
	i := e.indexOf(lineID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	e.cart.Items[i].Quantity = quantity
	return e.commit(ctx)
}

func (e *Engine) RemoveItem(ctx context.Context, lineID string) error {
	i := e.indexOf(lineID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	e.cart.Items = slices.Delete(e.cart.Items, i, i+1)
	return e.commit(ctx)
}

// ApplyPromoCode applies code if it exists and the subtotal meets its minimum.
// A rejected code leaves the cart and any previously applied promo untouched.
func (e *Engine) ApplyPromoCode(ctx context.Context, code string) (models.PromoCode, error) {
	p, ok := e.catalog.Lookup(code)
	if !ok {
		return models.PromoCode{}, fmt.Errorf("%w: %q", ErrPromoNotFound, code)
	}
	if !Eligible(p, e.cart.TotalAmount) {
		return models.PromoCode{}, fmt.Errorf("%w: %s needs %s", ErrMinimumNotMet, p.Code, p.MinOrder)
	}
	e.promo = &p
	e.reconcile()
	e.log.Info().Str("code", p.Code).Str("discount", e.discount.String()).Msg("promo applied")
	return p, e.save(ctx)
}

// RemovePromoCode clears the discount and the stored code.
func (e *Engine) RemovePromoCode(ctx context.Context) error {
	e.promo = nil
	e.reconcile()
	return e.save(ctx)
}

// ComputeBill prices the current cart without changing it.
func (e *Engine) ComputeBill(orderType models.OrderType, tip decimal.Decimal) models.BillBreakdown {
	return ComputeBill(e.cart.TotalAmount, e.discount, orderType, tip)
}

// Clear empties the cart and drops the promo.
func (e *Engine) Clear(ctx context.Context) error {
	e.cart.Items = []models.CartLine{}
	e.promo = nil
	e.reconcile()
	return e.sess.Delete(ctx, storage.KeyCart)
}

func (e *Engine) indexOf(lineID string) int {
	return slices.IndexFunc(e.cart.Items, func(l models.CartLine) bool { return l.ID == lineID })
}

func (e *Engine) commit(ctx context.Context) error {
	e.reconcile()
	return e.save(ctx)
}

// reconcile recomputes the total and re-evaluates the applied promo against it.
func (e *Engine) reconcile() {
	e.cart.TotalAmount = e.cart.Sum()
	e.discount = decimal.Zero
	e.cart.PromoCode = ""
	e.cart.Discount = nil
	if e.promo == nil {
		return
	}
	if !Eligible(*e.promo, e.cart.TotalAmount) {
		e.log.Info().Str("code", e.promo.Code).Msg("promo dropped, minimum order no longer met")
		e.promo = nil
		return
	}
	e.discount = DiscountFor(*e.promo, e.cart.TotalAmount)
	d := e.discount
	e.cart.PromoCode = e.promo.Code
	e.cart.Discount = &d
}

func (e *Engine) save(ctx context.Context) error {
	if err := e.sess.SetJSON(ctx, storage.KeyCart, e.cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
