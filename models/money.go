package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, matching the persisted client shapes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Amount builds a currency amount from an integer number of units.
func Amount(units int64) decimal.Decimal {
	return decimal.NewFromInt(units)
}

// RoundMoney rounds to the smallest currency subunit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
