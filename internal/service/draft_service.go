package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/internal/draft"
	"github.com/jafarshop/topup/internal/pricing"
	"github.com/jafarshop/topup/internal/repository"
	"github.com/jafarshop/topup/pkg/errors"
)

type DraftService struct {
	catalog      *catalog.Registry
	repos        *repository.Repositories
	deepLinkBase string
	logger       *zap.Logger
}

// NewDraftService creates the service behind the top-up draft endpoints
func NewDraftService(registry *catalog.Registry, repos *repository.Repositories, deepLinkBase string, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		catalog:      registry,
		repos:        repos,
		deepLinkBase: deepLinkBase,
		logger:       logger,
	}
}

// SessionPrefix namespaces one client's drafts inside the shared store
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}

func (s *DraftService) store(sessionID string) *draft.Store {
	return draft.NewStore(repository.Scoped(s.repos.Drafts, SessionPrefix(sessionID)), s.logger)
}

// GetProduct returns the product view with its offers and payment methods
func (s *DraftService) GetProduct(slug string) (*ProductView, error) {
	p, err := s.catalog.Lookup(slug)
	if err != nil {
		return nil, err
	}
	v := productView(p, true)
	return &v, nil
}

// ListProducts returns slug and title of every product
func (s *DraftService) ListProducts() []ProductView {
	products := s.catalog.List()
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, productView(p, false))
	}
	return out
}

// GetDraft loads the session's draft for a product, creating the default on first view
func (s *DraftService) GetDraft(ctx context.Context, sessionID, slug string) (*DraftView, error) {
	p, err := s.catalog.Lookup(slug)
	if err != nil {
		return nil, err
	}
	d := s.store(sessionID).Load(ctx, p.Slug)
	return s.view(p, d), nil
}

// UpdateDraft validates a partial update against the product's catalog and applies it
func (s *DraftService) UpdateDraft(ctx context.Context, sessionID, slug string, req DraftPatchRequest) (*DraftView, error) {
	p, err := s.catalog.Lookup(slug)
	if err != nil {
		return nil, err
	}
	patch, err := resolvePatch(p, req)
	if err != nil {
		return nil, err
	}

	h := s.store(sessionID).Open(ctx, p.Slug)
	if h.ReadFailed() {
		return nil, &errors.ErrUnavailable{Resource: "draft storage"}
	}
	if patch.IsEmpty() {
		return s.view(p, h.Current()), nil
	}
	d := h.Update(ctx, patch)
	return s.view(p, d), nil
}

// Submit checks the gate and assembles the summary and deep link.
// The draft is left exactly as it was.
func (s *DraftService) Submit(ctx context.Context, sessionID, slug string) (*SubmitResult, error) {
	p, err := s.catalog.Lookup(slug)
	if err != nil {
		return nil, err
	}
	d := s.store(sessionID).Load(ctx, p.Slug)
	if !d.IsSubmittable() {
		return nil, &errors.ErrValidation{Message: "draft is incomplete", Hint: domain.SubmitHint}
	}

	price := pricing.NewCalculator(p.PromoCodes).Quote(d)
	summary := BuildSummary(p, d, price)
	link, err := summary.DeepLink(s.deepLinkBase)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Draft summary assembled",
		zap.String("product", p.Slug),
		zap.Int64("total", price.Total),
	)

	return &SubmitResult{
		Product:  p.Slug,
		Summary:  summary.Lines,
		Text:     summary.Text(),
		DeepLink: link,
		Pricing:  pricingView(price),
	}, nil
}

func resolvePatch(p *domain.Product, req DraftPatchRequest) (domain.DraftPatch, error) {
	patch := domain.DraftPatch{
		PlayerID:     req.PlayerID,
		Quantity:     req.Quantity,
		ContactPhone: req.ContactPhone,
	}
	fields := map[string]string{}

	if req.Offer != nil {
		name := strings.TrimSpace(*req.Offer)
		offer := domain.None[domain.Offer]()
		if name != "" {
			o, ok := p.FindOffer(name)
			if !ok {
				fields["offer"] = "unknown offer for " + p.Slug
			}
			offer = domain.Some(o)
		}
		patch.SelectedOffer = &offer
	}

	if req.PaymentMethod != nil {
		label := strings.TrimSpace(*req.PaymentMethod)
		method := domain.None[string]()
		if label != "" {
			if !p.HasPaymentMethod(label) {
				fields["payment_method"] = "unknown payment method"
			}
			method = domain.Some(label)
		}
		patch.PaymentMethod = &method
	}

	if req.PromoCode != nil {
		code := domain.None[string]()
		if *req.PromoCode != "" {
			code = domain.Some(*req.PromoCode)
		}
		patch.PromoCode = &code
	}

	if len(fields) > 0 {
		return domain.DraftPatch{}, &errors.ErrValidation{Message: "invalid draft update", Fields: fields}
	}
	return patch, nil
}

func (s *DraftService) view(p *domain.Product, d domain.OrderDraft) *DraftView {
	price := pricing.NewCalculator(p.PromoCodes).Quote(d)
	v := &DraftView{
		Product:     productView(p, false),
		Draft:       draftFields(d),
		Pricing:     pricingView(price),
		State:       d.State(),
		Submittable: d.IsSubmittable(),
	}
	if !v.Submittable {
		v.Hint = domain.SubmitHint
	}
	return v
}

func productView(p *domain.Product, withTables bool) ProductView {
	v := ProductView{Slug: p.Slug, Title: p.Title}
	if withTables {
		v.Offers = make([]OfferView, 0, len(p.Offers))
		for _, o := range p.Offers {
			v.Offers = append(v.Offers, OfferView{Name: o.Name, UnitPrice: o.UnitPrice})
		}
		v.PaymentMethods = append([]string(nil), p.PaymentMethods...)
	}
	return v
}

func draftFields(d domain.OrderDraft) DraftFields {
	f := DraftFields{
		PlayerID:     d.PlayerID,
		Quantity:     d.Quantity,
		ContactPhone: d.ContactPhone,
	}
	if o, ok := d.SelectedOffer.Get(); ok {
		f.Offer = &OfferView{Name: o.Name, UnitPrice: o.UnitPrice}
	}
	if m, ok := d.PaymentMethod.Get(); ok {
		f.PaymentMethod = &m
	}
	if c, ok := d.PromoCode.Get(); ok {
		f.PromoCode = &c
	}
	return f
}

func pricingView(p pricing.Pricing) PricingView {
	return PricingView{
		Subtotal:       p.Subtotal,
		DiscountRate:   p.DiscountRate.InexactFloat64(),
		Discount:       p.Discount,
		Total:          p.Total,
		TotalFormatted: FormatRupiah(p.Total),
	}
}
