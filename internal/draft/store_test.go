package draft

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/internal/repository/memory"
	"github.com/jafarshop/topup/pkg/errors"
)

// mockKV is a KeyValueStore whose calls are scripted per test
type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *mockKV) Set(ctx context.Context, key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *mockKV) Delete(ctx context.Context, key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

var token80 = domain.Offer{Name: "80 Token", UnitPrice: 15663}

func TestLoad_MissingReturnsDefaults(t *testing.T) {
	store := NewStore(memory.NewKeyValueStore(), zap.NewNop())
	assert.Equal(t, domain.DefaultDraft(), store.Load(context.Background(), "mobile-legends"))
}

func TestLoad_UndecodableReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()
	require.NoError(t, kv.Set(ctx, "order:ml", "{not json"))
	require.NoError(t, kv.Set(ctx, "order:ff", `{"playerId":"p1","selectedOffer":"oops"}`))

	store := NewStore(kv, zap.NewNop())
	assert.Equal(t, domain.DefaultDraft(), store.Load(ctx, "ml"))
	assert.Equal(t, domain.DefaultDraft(), store.Load(ctx, "ff"))
}

func TestLoad_ReadErrorReturnsDefaults(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", "order:ml").Return("", stderrors.New("connection refused"))

	store := NewStore(kv, zap.NewNop())
	assert.Equal(t, domain.DefaultDraft(), store.Load(context.Background(), "ml"))
	kv.AssertExpectations(t)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKeyValueStore()
	require.NoError(t, kv.Set(ctx, "order:ml", `{"playerId":"p1","quantity":-4,"futureField":true}`))

	d := NewStore(kv, zap.NewNop()).Load(ctx, "ml")
	assert.Equal(t, "p1", d.PlayerID)
	assert.Equal(t, 1, d.Quantity)
	assert.False(t, d.SelectedOffer.IsSet())
	assert.False(t, d.PaymentMethod.IsSet())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewKeyValueStore(), zap.NewNop())

	saved := domain.DefaultDraft()
	saved.PlayerID = "12345678"
	saved.SelectedOffer = domain.Some(token80)
	saved.Quantity = 2
	saved.PromoCode = domain.Some("hemat10")

	store.Save(ctx, "ml", saved)
	loaded := store.Load(ctx, "ml")

	assert.Equal(t, saved, loaded)
	assert.False(t, loaded.PaymentMethod.IsSet())
	assert.Equal(t, "", loaded.ContactPhone)
}

func TestSave_WriteFailureIsSwallowed(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", "order:ml").Return("", &errors.ErrNotFound{Resource: "key", ID: "order:ml"})
	kv.On("Set", "order:ml", mock.AnythingOfType("string")).Return(stderrors.New("quota exceeded"))

	h := NewStore(kv, zap.NewNop()).Open(context.Background(), "ml")
	d := h.Update(context.Background(), domain.DraftPatch{PlayerID: strPtr("p1")})

	assert.Equal(t, "p1", d.PlayerID)
	assert.Equal(t, "p1", h.Current().PlayerID)
	kv.AssertNumberOfCalls(t, "Set", 1)
}

func TestUpdate_WritesOncePerMutation(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", "order:ml").Return(`{"playerId":"p1"}`, nil)
	kv.On("Set", "order:ml", mock.AnythingOfType("string")).Return(nil)

	ctx := context.Background()
	h := NewStore(kv, zap.NewNop()).Open(ctx, "ml")
	h.Update(ctx, domain.DraftPatch{ContactPhone: strPtr("8123")})
	q := domain.ParseQuantity("0")
	d := h.Update(ctx, domain.DraftPatch{Quantity: &q})

	assert.Equal(t, "p1", d.PlayerID)
	assert.Equal(t, "8123", d.ContactPhone)
	assert.Equal(t, 1, d.Quantity)
	kv.AssertNumberOfCalls(t, "Set", 2)
}

func TestUpdate_ReadFailureNeverOverwritesStoredDraft(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", "order:ml").Return("", stderrors.New("i/o timeout"))

	ctx := context.Background()
	h := NewStore(kv, zap.NewNop()).Open(ctx, "ml")
	require.True(t, h.ReadFailed())

	d := h.Update(ctx, domain.DraftPatch{ContactPhone: strPtr("811")})

	assert.Equal(t, "811", d.ContactPhone)
	kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestOpen_MissingIsNotAReadFailure(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", "order:ml").Return("", &errors.ErrNotFound{Resource: "key", ID: "order:ml"})
	kv.On("Get", "order:ff").Return("{not json", nil)

	store := NewStore(kv, zap.NewNop())
	assert.False(t, store.Open(context.Background(), "ml").ReadFailed())
	assert.False(t, store.Open(context.Background(), "ff").ReadFailed())
}

func TestUpdate_InvalidQuantityKeepsPrior(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewKeyValueStore(), zap.NewNop())
	h := store.Open(ctx, "ml")

	q := domain.ParseQuantity("3")
	h.Update(ctx, domain.DraftPatch{Quantity: &q})
	bad := domain.ParseQuantity("three")
	d := h.Update(ctx, domain.DraftPatch{Quantity: &bad})

	assert.Equal(t, 3, d.Quantity)
	assert.Equal(t, 3, store.Load(ctx, "ml").Quantity)
}

func TestIsolationAcrossProducts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewKeyValueStore(), zap.NewNop())

	a := store.Open(ctx, "a")
	b := store.Open(ctx, "b")
	a.Update(ctx, domain.DraftPatch{PlayerID: strPtr("player-a")})
	b.Update(ctx, domain.DraftPatch{PlayerID: strPtr("player-b")})
	a.Update(ctx, domain.DraftPatch{ContactPhone: strPtr("811")})

	assert.Equal(t, "player-a", store.Load(ctx, "a").PlayerID)
	assert.Equal(t, "811", store.Load(ctx, "a").ContactPhone)
	assert.Equal(t, "player-b", store.Load(ctx, "b").PlayerID)
	assert.Equal(t, "", store.Load(ctx, "b").ContactPhone)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewKeyValueStore(), zap.NewNop())
	store.Save(ctx, "ml", domain.OrderDraft{PlayerID: "p1", Quantity: 1})

	store.Clear(ctx, "ml")
	assert.Equal(t, domain.DefaultDraft(), store.Load(ctx, "ml"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "order:mobile-legends", Key("mobile-legends"))
}
