package cart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"food-storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrMinimumNotMet = errors.New("minimum order not met")
)

// PromoRejectedMessage is what shoppers see for any rejected code.
const PromoRejectedMessage = "Invalid promo code or minimum order not met"

// IsPromoRejection reports whether err is a business rejection of a promo
// code rather than an infrastructure failure.
func IsPromoRejection(err error) bool {
	return errors.Is(err, ErrPromoNotFound) || errors.Is(err, ErrMinimumNotMet)
}

var hundred = decimal.NewFromInt(100)

// Catalog is the static set of promo codes, keyed by upper-cased code.
type Catalog struct {
	codes map[string]models.PromoCode
}

func NewCatalog(codes ...models.PromoCode) (*Catalog, error) {
	validate := validator.New()
	c := &Catalog{codes: make(map[string]models.PromoCode, len(codes))}
	for _, p := range codes {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("promo %q: %w", p.Code, err)
		}
		if p.Discount.IsNegative() || p.MinOrder.IsNegative() {
			return nil, fmt.Errorf("promo %q: amounts must not be negative", p.Code)
		}
		if p.Type == models.PromoPercentage && p.Discount.GreaterThan(hundred) {
			return nil, fmt.Errorf("promo %q: percentage above 100", p.Code)
		}
		p.Code = normalize(p.Code)
		c.codes[p.Code] = p
	}
	return c, nil
}

// DefaultCatalog holds the codes advertised at checkout.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		models.PromoCode{
			Code: "FIRST50", Type: models.PromoPercentage,
			Discount: models.Amount(50), MinOrder: models.Amount(299),
			Description: "50% off on first order",
		},
		models.PromoCode{
			Code: "SAVE100", Type: models.PromoFixed,
			Discount: models.Amount(100), MinOrder: models.Amount(500),
			Description: "₹100 off on orders above ₹500",
		},
		models.PromoCode{
			Code: "WEEKEND25", Type: models.PromoPercentage,
			Discount: models.Amount(25), MinOrder: models.Amount(200),
			Description: "25% off weekend special",
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(code string) (models.PromoCode, bool) {
	p, ok := c.codes[normalize(code)]
	return p, ok
}

func (c *Catalog) All() []models.PromoCode {
	out := make([]models.PromoCode, 0, len(c.codes))
	for _, p := range c.codes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Eligible checks the minimum order threshold.
func Eligible(p models.PromoCode, subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.MinOrder)
}

// DiscountFor computes the discount of p against subtotal. Fixed discounts are
// capped at the subtotal so a bill never goes negative.
func DiscountFor(p models.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	switch p.Type {
	case models.PromoPercentage:
		return models.RoundMoney(subtotal.Mul(p.Discount).Div(hundred))
	case models.PromoFixed:
		return decimal.Min(p.Discount, subtotal)
	}
	return decimal.Zero
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
