package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jafarshop/topup/internal/domain"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// File is the YAML catalog document
type File struct {
	Defaults DefaultsEntry  `yaml:"defaults"`
	Products []ProductEntry `yaml:"products"`
}

// DefaultsEntry applies to every product that does not override it
type DefaultsEntry struct {
	PaymentMethods []string          `yaml:"payment_methods"`
	PromoCodes     map[string]string `yaml:"promo_codes"`
	Offers         []domain.Offer    `yaml:"offers"`
}

type ProductEntry struct {
	Slug           string            `yaml:"slug"`
	Title          string            `yaml:"title"`
	Offers         []domain.Offer    `yaml:"offers"`
	PaymentMethods []string          `yaml:"payment_methods"`
	PromoCodes     map[string]string `yaml:"promo_codes"`
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &f, nil
}

// LoadFile reads the catalog at path, or the embedded default when path is empty
func LoadFile(path string) (*File, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

func parsePromoCodes(codes map[string]string) (map[string]decimal.Decimal, error) {
	if codes == nil {
		return nil, nil
	}
	out := make(map[string]decimal.Decimal, len(codes))
	for code, raw := range codes {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("promo code %q: invalid rate %q", code, raw)
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("promo code %q: rate %s outside [0, 1]", code, rate)
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return out, nil
}

func validateOffers(slug string, offers []domain.Offer) error {
	seen := make(map[string]bool, len(offers))
	for _, o := range offers {
		if strings.TrimSpace(o.Name) == "" {
			return fmt.Errorf("product %q: offer without a name", slug)
		}
		if strings.TrimSpace(o.Name) != o.Name {
			return fmt.Errorf("product %q: offer %q has surrounding whitespace", slug, o.Name)
		}
		if o.UnitPrice < 0 {
			return fmt.Errorf("product %q: offer %q has a negative price", slug, o.Name)
		}
		if o.UnitPrice > domain.MaxUnitPrice {
			return fmt.Errorf("product %q: offer %q price exceeds %d", slug, o.Name, int64(domain.MaxUnitPrice))
		}
		if seen[o.Name] {
			return fmt.Errorf("product %q: duplicate offer %q", slug, o.Name)
		}
		seen[o.Name] = true
	}
	return nil
}
