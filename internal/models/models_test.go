package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCart_RecalculateTotal(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: uuid.New(), Quantity: 2, Price: dec("100"), SalePrice: dec("80")},
		{ProductID: uuid.New(), Quantity: 3, Price: dec("19.99"), SalePrice: decimal.Zero},
	}}

	cart.RecalculateTotal()

	assert.True(t, dec("219.97").Equal(cart.TotalAmount), cart.TotalAmount.String())
	assert.Equal(t, 0, cart.Items[0].Position)
	assert.Equal(t, 1, cart.Items[1].Position)
}

func TestCart_RemoveProducts(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	cart := &Cart{Items: []CartItem{{ProductID: a}, {ProductID: b}, {ProductID: c}}}

	removed := cart.RemoveProducts(map[uuid.UUID]struct{}{a: {}, c: {}, uuid.New(): {}})

	assert.Equal(t, 2, removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b, cart.Items[0].ProductID)
	assert.Equal(t, -1, cart.FindItem(a))
	assert.Equal(t, 0, cart.FindItem(b))
}

func TestOrder_AmountInMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"99.99":  9999,
		"120.5":  12050,
		"0.005":  1,
		"1000":   100000,
		"10.004": 1000,
	}
	for total, want := range cases {
		o := &Order{TotalAmount: dec(total)}
		assert.Equal(t, want, o.AmountInMinorUnits(), total)
	}
}

func TestOrder_ProductIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	o := &Order{CartItems: []OrderItem{{ProductID: a}, {ProductID: b}, {ProductID: a}}}

	ids := o.ProductIDs()

	assert.Len(t, ids, 2)
	assert.Contains(t, ids, a)
	assert.Contains(t, ids, b)
}

func TestAverageRating(t *testing.T) {
	assert.True(t, AverageRating(nil).IsZero())

	reviews := []Review{{ReviewValue: 5}, {ReviewValue: 4}, {ReviewValue: 4}}
	assert.Equal(t, "4.33", AverageRating(reviews).StringFixed(2))
}

func TestEffectivePrice(t *testing.T) {
	assert.True(t, dec("80").Equal(EffectivePrice(dec("100"), dec("80"))))
	assert.True(t, dec("100").Equal(EffectivePrice(dec("100"), decimal.Zero)))
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, OrderStatus("confirmed").Valid())
	assert.False(t, OrderStatus("teleported").Valid())
	assert.True(t, PaymentStatus("failed").Valid())
	assert.False(t, PaymentStatus("refunded").Valid())
	assert.True(t, PaymentMethod("cod").Valid())
	assert.False(t, PaymentMethod("COD").Valid())
	assert.False(t, UserRole("root").Valid())
}

func TestUser_Password(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret123"))

	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("secret123"))
	assert.Error(t, u.CheckPassword("secret124"))
}

func TestPricesMarshalAsNumbers(t *testing.T) {
	raw, err := json.Marshal(CartItem{Quantity: 1, Price: dec("12.50"), SalePrice: decimal.Zero})
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"price":12.5`)
}

func TestJSONB_Scan(t *testing.T) {
	var fromBytes JSONB
	require.NoError(t, fromBytes.Scan([]byte(`{"orderStatus":"shipped"}`)))
	assert.Equal(t, "shipped", fromBytes["orderStatus"])

	var fromString JSONB
	require.NoError(t, fromString.Scan(`{"role":"admin"}`))
	assert.Equal(t, "admin", fromString["role"])

	empty := JSONB{"stale": true}
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)

	var bad JSONB
	assert.Error(t, bad.Scan(42))
}
