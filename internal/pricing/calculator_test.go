package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jafarshop/topup/internal/domain"
)

var token80 = domain.Offer{Name: "80 Token", UnitPrice: 15663}

func draftWith(offer *domain.Offer, qty int, promo string) domain.OrderDraft {
	d := domain.DefaultDraft()
	if offer != nil {
		d.SelectedOffer = domain.Some(*offer)
	}
	d.Quantity = qty
	if promo != "" {
		d.PromoCode = domain.Some(promo)
	}
	return d
}

func TestDiscountRate(t *testing.T) {
	c := NewCalculator(nil)
	ten := decimal.RequireFromString("0.10")

	for _, code := range []string{"HEMAT10", "hemat10", "  Hemat10", "hemat10 "} {
		assert.True(t, c.DiscountRate(code).Equal(ten), code)
	}
	for _, code := range []string{"", "   ", "HEMAT20", "HEMAT 10", "HEMAT100"} {
		assert.True(t, c.DiscountRate(code).IsZero(), code)
	}
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, int64(0), Subtotal(draftWith(nil, 5, "")))
	for q := 1; q <= 20; q++ {
		assert.Equal(t, token80.UnitPrice*int64(q), Subtotal(draftWith(&token80, q, "")))
	}
}

func TestSubtotal_LargeValuesStayNonNegative(t *testing.T) {
	maxOffer := domain.Offer{Name: "max", UnitPrice: domain.MaxUnitPrice}
	sub := Subtotal(draftWith(&maxOffer, domain.MaxQuantity, ""))
	assert.Equal(t, int64(domain.MaxUnitPrice)*domain.MaxQuantity, sub)
	assert.Positive(t, sub)

	huge := domain.Offer{Name: "huge", UnitPrice: 9_000_000_000_000}
	sub = Subtotal(draftWith(&huge, 2_000_000, ""))
	assert.Equal(t, int64(math.MaxInt64), sub)
	assert.Positive(t, NewCalculator(nil).Quote(draftWith(&huge, 2_000_000, "HEMAT10")).Total)
}

func TestTotal(t *testing.T) {
	ten := decimal.RequireFromString("0.10")
	for _, s := range []int64{0, 1, 4, 5, 15, 99, 31326, 1000001} {
		assert.Equal(t, s, Total(s, decimal.Zero))
		got := Total(s, ten)
		want := decimal.NewFromInt(s).Mul(decimal.RequireFromString("0.9")).Round(0).IntPart()
		assert.Equal(t, want, got)
		assert.GreaterOrEqual(t, got, int64(0))
	}
	// 5 * 0.9 = 4.5 rounds up
	assert.Equal(t, int64(5), Total(5, ten))
	assert.Equal(t, int64(0), Total(100, decimal.NewFromInt(1)))
}

func TestQuote_WithPromo(t *testing.T) {
	p := NewCalculator(nil).Quote(draftWith(&token80, 2, "hemat10"))

	assert.Equal(t, int64(31326), p.Subtotal)
	assert.True(t, p.DiscountRate.Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, int64(28193), p.Total)
	assert.Equal(t, int64(3133), p.Discount)
}

func TestQuote_WithoutPromo(t *testing.T) {
	p := NewCalculator(nil).Quote(draftWith(&token80, 1, ""))

	assert.Equal(t, int64(15663), p.Subtotal)
	assert.True(t, p.DiscountRate.IsZero())
	assert.Equal(t, int64(15663), p.Total)
	assert.Equal(t, int64(0), p.Discount)
}

func TestQuote_NoOffer(t *testing.T) {
	p := NewCalculator(nil).Quote(draftWith(nil, 3, "HEMAT10"))
	assert.Equal(t, int64(0), p.Subtotal)
	assert.Equal(t, int64(0), p.Total)
}

func TestNewCalculator_CustomTable(t *testing.T) {
	c := NewCalculator(map[string]decimal.Decimal{
		" weekend25 ": decimal.RequireFromString("0.25"),
		"BROKEN":      decimal.RequireFromString("1.5"),
		"NEGATIVE":    decimal.RequireFromString("-0.2"),
	})

	assert.True(t, c.DiscountRate("WEEKEND25").Equal(decimal.RequireFromString("0.25")))
	assert.True(t, c.DiscountRate("HEMAT10").IsZero())
	assert.True(t, c.DiscountRate("broken").Equal(decimal.NewFromInt(1)))
	assert.True(t, c.DiscountRate("negative").IsZero())

	d := draftWith(&token80, 1, "broken")
	assert.Equal(t, int64(0), c.Quote(d).Total)
}
