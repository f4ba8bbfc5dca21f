package cart

import (
	"food-storefront/models"

	"github.com/shopspring/decimal"
)

var (
	// DeliveryFee applies to delivery orders only.
	DeliveryFee = models.Amount(50)
	// TaxRate applies to the discounted subtotal.
	TaxRate = decimal.RequireFromString("0.18")
)

// ComputeBill composes the bill from its inputs. It has no side effects.
func ComputeBill(subtotal, discount decimal.Decimal, orderType models.OrderType, tip decimal.Decimal) models.BillBreakdown {
	fee := decimal.Zero
	if orderType == models.OrderDelivery {
		fee = DeliveryFee
	}
	if tip.IsNegative() {
		tip = decimal.Zero
	}
	tax := models.RoundMoney(subtotal.Sub(discount).Mul(TaxRate))
	total := subtotal.Add(fee).Add(tax).Add(tip).Sub(discount)
	return models.BillBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Tax:         tax,
		Tip:         tip,
		Total:       total,
	}
}
