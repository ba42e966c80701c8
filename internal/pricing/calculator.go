// Package pricing derives subtotal, discount and total from an order draft.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/topup/internal/domain"
)

// DefaultPromoCode is the only code recognised when a product brings no promo table of its own.
const DefaultPromoCode = "HEMAT10"

var defaultRate = decimal.RequireFromString("0.10")

// DefaultPromoCodes returns a fresh copy of the built-in promo table
func DefaultPromoCodes() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{DefaultPromoCode: defaultRate}
}

// Pricing is the derived price of a draft
type Pricing struct {
	Subtotal     int64
	DiscountRate decimal.Decimal
	Discount     int64
	Total        int64
}

// Calculator prices drafts against a promo table. It holds no other state.
type Calculator struct {
	promos map[string]decimal.Decimal
}

// NewCalculator builds a calculator. Codes are normalized the same way user input is;
// rates outside [0, 1] are clamped. A nil table means the built-in one.
func NewCalculator(promos map[string]decimal.Decimal) *Calculator {
	if promos == nil {
		promos = DefaultPromoCodes()
	}
	normalized := make(map[string]decimal.Decimal, len(promos))
	for code, rate := range promos {
		if rate.IsNegative() {
			rate = decimal.Zero
		}
		if rate.GreaterThan(decimal.NewFromInt(1)) {
			rate = decimal.NewFromInt(1)
		}
		normalized[NormalizeCode(code)] = rate
	}
	return &Calculator{promos: normalized}
}

// NormalizeCode trims whitespace and upper-cases a promo code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountRate returns the rate for a promo code, zero when the code is unknown or empty
func (c *Calculator) DiscountRate(code string) decimal.Decimal {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return decimal.Zero
	}
	if rate, ok := c.promos[normalized]; ok {
		return rate
	}
	return decimal.Zero
}

// Subtotal is unit price times quantity, or zero without an offer.
// Catalog prices are bounded by domain.MaxUnitPrice; a product beyond int64 saturates.
func Subtotal(d domain.OrderDraft) int64 {
	offer, ok := d.SelectedOffer.Get()
	if !ok || offer.UnitPrice <= 0 {
		return 0
	}
	qty := int64(d.Quantity)
	if qty > math.MaxInt64/offer.UnitPrice {
		return math.MaxInt64
	}
	return offer.UnitPrice * qty
}

// Total rounds subtotal * (1 - rate) half-up to a whole unit
func Total(subtotal int64, rate decimal.Decimal) int64 {
	if subtotal <= 0 {
		return 0
	}
	total := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(1).Sub(rate)).
		Round(0).
		IntPart()
	if total < 0 {
		return 0
	}
	return total
}

// Quote prices a draft
func (c *Calculator) Quote(d domain.OrderDraft) Pricing {
	rate := c.DiscountRate(d.PromoCode.OrElse(""))
	subtotal := Subtotal(d)
	total := Total(subtotal, rate)
	return Pricing{
		Subtotal:     subtotal,
		DiscountRate: rate,
		Discount:     subtotal - total,
		Total:        total,
	}
}
