// Package catalog holds the offer, payment method and promo tables each product is priced with.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/pkg/errors"
)

// Listing is a product as the storefront backend reports it
type Listing struct {
	Slug  string
	Title string
}

// Registry is the live catalog. Products handed out are never mutated afterwards.
type Registry struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string

	defaultOffers   []domain.Offer
	defaultPayments []string
	defaultPromos   map[string]decimal.Decimal
}

// NewRegistry validates a catalog document and builds the registry from it
func NewRegistry(f *File) (*Registry, error) {
	promos, err := parsePromoCodes(f.Defaults.PromoCodes)
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	if err := validateOffers("defaults", f.Defaults.Offers); err != nil {
		return nil, err
	}

	r := &Registry{
		products:        make(map[string]*domain.Product, len(f.Products)),
		defaultOffers:   f.Defaults.Offers,
		defaultPayments: f.Defaults.PaymentMethods,
		defaultPromos:   promos,
	}

	for _, entry := range f.Products {
		p, err := r.build(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := r.products[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		r.products[p.Slug] = p
		r.order = append(r.order, p.Slug)
	}

	return r, nil
}

// Load reads and validates the catalog at path (empty path: embedded default)
func Load(path string) (*Registry, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(f)
}

func (r *Registry) build(entry ProductEntry) (*domain.Product, error) {
	slug := strings.TrimSpace(entry.Slug)
	if slug == "" {
		return nil, fmt.Errorf("product without a slug")
	}

	offers := entry.Offers
	if len(offers) == 0 {
		offers = r.defaultOffers
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("product %q has no offers", slug)
	}
	if err := validateOffers(slug, offers); err != nil {
		return nil, err
	}

	payments := entry.PaymentMethods
	if payments == nil {
		payments = r.defaultPayments
	}
	if len(payments) == 0 {
		return nil, fmt.Errorf("product %q has no payment methods", slug)
	}

	promos := r.defaultPromos
	if entry.PromoCodes != nil {
		parsed, err := parsePromoCodes(entry.PromoCodes)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", slug, err)
		}
		promos = parsed
	}

	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = slug
	}

	return &domain.Product{
		Slug:           slug,
		Title:          title,
		Offers:         append([]domain.Offer(nil), offers...),
		PaymentMethods: append([]string(nil), payments...),
		PromoCodes:     copyPromos(promos),
	}, nil
}

func copyPromos(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Lookup returns the product with the given slug
func (r *Registry) Lookup(slug string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[slug]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
	}
	return p, nil
}

// List returns all products in catalog order
func (r *Registry) List() []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Product, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.products[slug])
	}
	return out
}

// ApplyListings refreshes titles from the storefront backend. Products the catalog does not
// know are added only when default offers are configured; the rest are reported as skipped.
func (r *Registry) ApplyListings(listings []Listing) (updated, added, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range listings {
		slug := strings.TrimSpace(l.Slug)
		title := strings.TrimSpace(l.Title)
		if slug == "" {
			skipped++
			continue
		}

		if existing, ok := r.products[slug]; ok {
			if title == "" || title == existing.Title {
				continue
			}
			cp := *existing
			cp.Title = title
			r.products[slug] = &cp
			updated++
			continue
		}

		if len(r.defaultOffers) == 0 || len(r.defaultPayments) == 0 {
			skipped++
			continue
		}
		p, err := r.build(ProductEntry{Slug: slug, Title: title})
		if err != nil {
			skipped++
			continue
		}
		r.products[slug] = p
		r.order = append(r.order, slug)
		added++
	}

	return updated, added, skipped
}
