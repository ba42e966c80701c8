package service

import (
	"github.com/jafarshop/topup/internal/domain"
)

// DraftPatchRequest is the partial update payload. Absent fields are left untouched;
// an empty string clears offer, payment method and promo code.
type DraftPatchRequest struct {
	PlayerID      *string               `json:"player_id"`
	Offer         *string               `json:"offer"`
	Quantity      *domain.QuantityInput `json:"quantity"`
	PaymentMethod *string               `json:"payment_method"`
	ContactPhone  *string               `json:"contact_phone"`
	PromoCode     *string               `json:"promo_code"`
}

// OfferView is an offer as the API shows it
type OfferView struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

// ProductView lists a product's fixed offer and payment tables
type ProductView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Offers         []OfferView `json:"offers,omitempty"`
	PaymentMethods []string    `json:"payment_methods,omitempty"`
}

// DraftFields mirrors the draft with explicit nulls for absent values
type DraftFields struct {
	PlayerID      string     `json:"player_id"`
	Offer         *OfferView `json:"offer"`
	Quantity      int        `json:"quantity"`
	PaymentMethod *string    `json:"payment_method"`
	ContactPhone  string     `json:"contact_phone"`
	PromoCode     *string    `json:"promo_code"`
}

// PricingView is the derived price
type PricingView struct {
	Subtotal       int64   `json:"subtotal"`
	DiscountRate   float64 `json:"discount_rate"`
	Discount       int64   `json:"discount"`
	Total          int64   `json:"total"`
	TotalFormatted string  `json:"total_formatted"`
}

// DraftView is what the top-up page renders
type DraftView struct {
	Product     ProductView       `json:"product"`
	Draft       DraftFields       `json:"draft"`
	Pricing     PricingView       `json:"pricing"`
	State       domain.DraftState `json:"state"`
	Submittable bool              `json:"submittable"`
	Hint        string            `json:"hint,omitempty"`
}

// SubmitResult is the confirmation handed back on submit
type SubmitResult struct {
	Product  string        `json:"product"`
	Summary  []SummaryLine `json:"summary"`
	Text     string        `json:"text"`
	DeepLink string        `json:"deep_link"`
	Pricing  PricingView   `json:"pricing"`
}
