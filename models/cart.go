package models

import "github.com/shopspring/decimal"

type CartLine struct {
	ID             string   `json:"_id"`
	MenuItem       MenuItem `json:"menuItem"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.MenuItem.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is persisted under the `cart` key. PromoCode and Discount are only
// present while a promo is applied.
type Cart struct {
	Items       []CartLine       `json:"items"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	PromoCode   string           `json:"promoCode,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
}

// Sum recomputes the amount from the lines; TotalAmount must always equal it.
func (c Cart) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// Clone returns a deep copy so callers can't mutate engine state.
func (c Cart) Clone() Cart {
	out := Cart{TotalAmount: c.TotalAmount, PromoCode: c.PromoCode}
	if c.Discount != nil {
		d := *c.Discount
		out.Discount = &d
	}
	out.Items = make([]CartLine, len(c.Items))
	for i, l := range c.Items {
		l.Customizations = append([]string{}, l.Customizations...)
		out.Items[i] = l
	}
	return out
}

type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)

type PromoCode struct {
	Code        string          `json:"code" validate:"required"`
	Type        PromoType       `json:"type" validate:"oneof=percentage fixed"`
	Discount    decimal.Decimal `json:"discount"`
	MinOrder    decimal.Decimal `json:"minOrder"`
	Description string          `json:"description"`
}
