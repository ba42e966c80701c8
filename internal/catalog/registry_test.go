package catalog

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/topup/pkg/errors"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	p, err := r.Lookup("mobile-legends")
	require.NoError(t, err)
	assert.Equal(t, "Mobile Legends", p.Title)

	o, ok := p.FindOffer("80 Token")
	require.True(t, ok)
	assert.Equal(t, int64(15663), o.UnitPrice)
	assert.True(t, p.HasPaymentMethod("QRIS"))
	assert.True(t, p.PromoCodes["HEMAT10"].Equal(decimal.RequireFromString("0.10")))

	genshin, err := r.Lookup("genshin-impact")
	require.NoError(t, err)
	assert.False(t, genshin.HasPaymentMethod("OVO"))

	valorant, err := r.Lookup("valorant")
	require.NoError(t, err)
	assert.NotNil(t, valorant.PromoCodes)
	assert.Empty(t, valorant.PromoCodes)

	slugs := make([]string, 0)
	for _, p := range r.List() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"mobile-legends", "free-fire", "genshin-impact", "valorant"}, slugs)
}

func TestLookup_NotFound(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	_, err = r.Lookup("minecraft")
	var nf *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &nf))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  payment_methods: [QRIS]
products:
  - slug: pubg
    offers:
      - { name: "60 UC", unit_price: 14000 }
`), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	p, err := r.Lookup("pubg")
	require.NoError(t, err)
	assert.Equal(t, "pubg", p.Title)
	assert.Nil(t, p.PromoCodes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewRegistry_Invalid(t *testing.T) {
	cases := map[string]string{
		"no slug":        "defaults: {payment_methods: [QRIS]}\nproducts:\n  - offers: [{name: a, unit_price: 1}]\n",
		"no offers":      "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n",
		"negative price": "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n    offers: [{name: a, unit_price: -1}]\n",
		"padded name":    "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n    offers: [{name: \" 80 Token\", unit_price: 1}]\n",
		"price too big":  "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n    offers: [{name: a, unit_price: 9000000000000}]\n",
		"dup offer":      "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n    offers: [{name: a, unit_price: 1}, {name: a, unit_price: 2}]\n",
		"dup slug":       "defaults: {payment_methods: [QRIS]}\nproducts:\n  - slug: x\n    offers: [{name: a, unit_price: 1}]\n  - slug: x\n    offers: [{name: a, unit_price: 1}]\n",
		"no payments":    "products:\n  - slug: x\n    offers: [{name: a, unit_price: 1}]\n",
		"bad rate":       "defaults: {payment_methods: [QRIS], promo_codes: {X: abc}}\nproducts: []\n",
		"rate above one": "defaults: {payment_methods: [QRIS], promo_codes: {X: \"1.5\"}}\nproducts: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := Parse([]byte(doc))
			require.NoError(t, err)
			_, err = NewRegistry(f)
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("products: [unclosed"))
	assert.Error(t, err)
}

func TestApplyListings(t *testing.T) {
	f, err := Parse([]byte(`
defaults:
  payment_methods: [QRIS]
  offers:
    - { name: "Voucher 10K", unit_price: 10000 }
products:
  - slug: ml
    title: ML
    offers: [{ name: "80 Token", unit_price: 15663 }]
`))
	require.NoError(t, err)
	r, err := NewRegistry(f)
	require.NoError(t, err)

	before, err := r.Lookup("ml")
	require.NoError(t, err)

	updated, added, skipped := r.ApplyListings([]Listing{
		{Slug: "ml", Title: "Mobile Legends: Bang Bang"},
		{Slug: "steam-wallet", Title: "Steam Wallet"},
		{Slug: "", Title: "nameless"},
	})
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)

	after, err := r.Lookup("ml")
	require.NoError(t, err)
	assert.Equal(t, "Mobile Legends: Bang Bang", after.Title)
	assert.Equal(t, "ML", before.Title)

	steam, err := r.Lookup("steam-wallet")
	require.NoError(t, err)
	_, ok := steam.FindOffer("Voucher 10K")
	assert.True(t, ok)
	assert.Len(t, r.List(), 2)
}

func TestApplyListings_NoDefaultOffers(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	updated, added, skipped := r.ApplyListings([]Listing{
		{Slug: "mobile-legends", Title: "Mobile Legends"},
		{Slug: "unknown-game", Title: "Unknown"},
	})
	assert.Equal(t, 0, updated)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, skipped)
}
