package service

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/internal/pricing"
)

const placeholder = "-"

// SummaryLine is one "label: value" row of an order summary
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the human-readable rendering of a draft and its price
type Summary struct {
	Lines []SummaryLine `json:"lines"`
}

// FormatRupiah renders a whole-Rupiah amount with Indonesian digit grouping, e.g. "Rp 28.193"
func FormatRupiah(amount int64) string {
	p := message.NewPrinter(language.Indonesian)
	return p.Sprintf("Rp %d", amount)
}

// BuildSummary assembles the summary lines; missing values render as "-"
func BuildSummary(product *domain.Product, d domain.OrderDraft, price pricing.Pricing) Summary {
	playerID := strings.TrimSpace(d.PlayerID)
	if playerID == "" {
		playerID = placeholder
	}

	offer := placeholder
	if o, ok := d.SelectedOffer.Get(); ok {
		offer = fmt.Sprintf("%s x %d", o.Name, d.Quantity)
	}

	promo := placeholder
	if code, ok := d.PromoCode.Get(); ok && strings.TrimSpace(code) != "" {
		promo = strings.TrimSpace(code)
	}

	return Summary{Lines: []SummaryLine{
		{Label: "Product", Value: product.Title},
		{Label: "Player ID", Value: playerID},
		{Label: "Offer", Value: offer},
		{Label: "Payment", Value: d.PaymentMethod.OrElse(placeholder)},
		{Label: "Promo", Value: promo},
		{Label: "Total", Value: FormatRupiah(price.Total)},
	}}
}

// Text joins the lines as "label: value", one per line
func (s Summary) Text() string {
	parts := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		parts = append(parts, l.Label+": "+l.Value)
	}
	return strings.Join(parts, "\n")
}

// DeepLink appends the summary text to base as a single URL-encoded "text" parameter
func (s Summary) DeepLink(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid deep link base %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid deep link base %q: scheme and host required", base)
	}
	param := "text=" + encodeComponent(s.Text())
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String(), nil
}

// encodeComponent escapes like a browser's encodeURIComponent does for spaces
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
