package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SubmitHint is shown whenever a draft cannot be submitted yet.
const SubmitHint = "complete: id, offer, quantity, payment method, phone"

// MaxUnitPrice keeps UnitPrice * MaxQuantity within int64.
const MaxUnitPrice = math.MaxInt64 / MaxQuantity

// Offer is a fixed, priced denomination of a product (whole Rupiah, no minor units)
type Offer struct {
	Name      string `json:"name" yaml:"name"`
	UnitPrice int64  `json:"unitPrice" yaml:"unit_price"`
}

// Product is the catalog entry a draft is priced against
type Product struct {
	Slug           string
	Title          string
	Offers         []Offer
	PaymentMethods []string
	PromoCodes     map[string]decimal.Decimal // normalized code -> discount rate
}

// FindOffer looks up an offer by its exact name
func (p *Product) FindOffer(name string) (Offer, bool) {
	for _, o := range p.Offers {
		if o.Name == name {
			return o, true
		}
	}
	return Offer{}, false
}

// HasPaymentMethod reports whether label is one of the product's payment methods
func (p *Product) HasPaymentMethod(label string) bool {
	for _, m := range p.PaymentMethods {
		if m == label {
			return true
		}
	}
	return false
}

// OrderDraft is the in-progress order for one product. The JSON form is the persisted record.
type OrderDraft struct {
	PlayerID      string           `json:"playerId"`
	SelectedOffer Optional[Offer]  `json:"selectedOffer"`
	Quantity      int              `json:"quantity"`
	PaymentMethod Optional[string] `json:"paymentMethodLabel"`
	ContactPhone  string           `json:"contactPhone"`
	PromoCode     Optional[string] `json:"promoCode"`
}

// DefaultDraft is the draft of a product nobody has touched yet
func DefaultDraft() OrderDraft {
	return OrderDraft{Quantity: MinQuantity}
}

// Normalized enforces the quantity bounds on a draft that came from outside (e.g. storage)
func (d OrderDraft) Normalized() OrderDraft {
	if d.Quantity < MinQuantity {
		d.Quantity = MinQuantity
	}
	if d.Quantity > MaxQuantity {
		d.Quantity = MaxQuantity
	}
	return d
}

// DraftPatch is a partial update. A nil field is left untouched.
type DraftPatch struct {
	PlayerID      *string
	SelectedOffer *Optional[Offer]
	Quantity      *QuantityInput
	PaymentMethod *Optional[string]
	ContactPhone  *string
	PromoCode     *Optional[string]
}

// IsEmpty reports whether the patch touches no field
func (p DraftPatch) IsEmpty() bool {
	return p.PlayerID == nil && p.SelectedOffer == nil && p.Quantity == nil &&
		p.PaymentMethod == nil && p.ContactPhone == nil && p.PromoCode == nil
}

// Apply merges the patch into a copy of the draft
func (d OrderDraft) Apply(p DraftPatch) OrderDraft {
	if p.PlayerID != nil {
		d.PlayerID = *p.PlayerID
	}
	if p.SelectedOffer != nil {
		d.SelectedOffer = *p.SelectedOffer
	}
	if p.Quantity != nil && p.Quantity.Valid() {
		d.Quantity = p.Quantity.Value()
	}
	if p.PaymentMethod != nil {
		d.PaymentMethod = *p.PaymentMethod
	}
	if p.ContactPhone != nil {
		d.ContactPhone = *p.ContactPhone
	}
	if p.PromoCode != nil {
		d.PromoCode = *p.PromoCode
	}
	return d.Normalized()
}

// IsSubmittable is the validity gate: player id, offer, quantity, payment method and phone
// must all be present.
func (d OrderDraft) IsSubmittable() bool {
	return strings.TrimSpace(d.PlayerID) != "" &&
		d.SelectedOffer.IsSet() &&
		d.Quantity > 0 &&
		d.PaymentMethod.IsSet() &&
		strings.TrimSpace(d.ContactPhone) != ""
}

// State maps the gate onto the two observable draft states
func (d OrderDraft) State() DraftState {
	if d.IsSubmittable() {
		return DraftStateComplete
	}
	return DraftStateIncomplete
}
