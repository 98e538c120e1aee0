package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(id string, base int64, qty int, deltas ...int64) CartItem {
	custom := map[string]Customization{}
	for i, d := range deltas {
		custom[fmt.Sprintf("opt-%d", i)] = Customization{
			VariantID:   fmt.Sprintf("var-%d", i),
			VariantName: "Variant",
			PriceDelta:  decimal.NewFromInt(d),
		}
	}
	item := CartItem{
		ID:             id,
		ProductID:      "prod-" + id,
		Name:           "Item " + id,
		BasePrice:      decimal.NewFromInt(base),
		Quantity:       qty,
		Customizations: custom,
		Currency:       DefaultCurrency,
	}
	item.Recalculate()
	return item
}

func assertCartInvariants(t *testing.T, c *Cart) {
	t.Helper()
	sum := decimal.Zero
	count := 0
	for _, item := range c.Items {
		expected := item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		assert.True(t, expected.Equal(item.TotalPrice), "item %s total %s, expected %s", item.ID, item.TotalPrice, expected)
		assert.GreaterOrEqual(t, item.Quantity, 1)
		sum = sum.Add(item.TotalPrice)
		count += item.Quantity
	}
	assert.True(t, sum.Equal(c.Subtotal), "subtotal %s, expected %s", c.Subtotal, sum)
	assert.Equal(t, count, c.TotalItems)
}

func TestCartItem_Recalculate(t *testing.T) {
	item := testItem("a", 500, 3, 50, 25)
	assert.True(t, decimal.NewFromInt(575).Equal(item.UnitPrice()))
	assert.True(t, decimal.NewFromInt(1725).Equal(item.TotalPrice))

	item.Quantity = 1
	item.Recalculate()
	assert.True(t, decimal.NewFromInt(575).Equal(item.TotalPrice))
}

func TestCart_Operations(t *testing.T) {
	c := NewCart(DefaultCurrency)
	c.Add(testItem("a", 100, 2, 10))
	c.Add(testItem("b", 250, 1))

	assert.Equal(t, 3, c.TotalItems)
	assert.True(t, decimal.NewFromInt(470).Equal(c.Subtotal))

	require.True(t, c.SetQuantity("b", 4))
	assert.Equal(t, 6, c.TotalItems)
	assert.True(t, decimal.NewFromInt(1220).Equal(c.Subtotal))

	require.True(t, c.SetQuantity("a", 0))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "b", c.Items[0].ID)

	assert.False(t, c.Remove("missing"))
	assert.False(t, c.SetQuantity("missing", 3))

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalItems)
	assert.True(t, c.Subtotal.IsZero())
	assert.NotNil(t, c.Items)
}

func TestCart_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		c := NewCart(DefaultCurrency)
		next := 0
		for step := 0; step < 40; step++ {
			switch rng.Intn(3) {
			case 0:
				next++
				deltas := make([]int64, rng.Intn(3))
				for i := range deltas {
					deltas[i] = int64(rng.Intn(200))
				}
				c.Add(testItem(fmt.Sprintf("i%d", next), int64(rng.Intn(5000)+1), rng.Intn(5)+1, deltas...))
			case 1:
				if len(c.Items) > 0 {
					c.Remove(c.Items[rng.Intn(len(c.Items))].ID)
				}
			case 2:
				if len(c.Items) > 0 {
					c.SetQuantity(c.Items[rng.Intn(len(c.Items))].ID, rng.Intn(6)-1)
				}
			}
			assertCartInvariants(t, c)
		}
	}
}

func TestCart_RecalculateRepairsStoredState(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{ID: "x", BasePrice: decimal.NewFromInt(100), Quantity: 2, TotalPrice: decimal.NewFromInt(1)},
		{ID: "y", BasePrice: decimal.NewFromInt(100), Quantity: 0},
	}}
	c.Recalculate()

	require.Len(t, c.Items, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(c.Items[0].TotalPrice))
	assertCartInvariants(t, c)
}

func TestCart_Snapshot(t *testing.T) {
	c := NewCart(DefaultCurrency)
	c.Add(testItem("a", 100, 2, 10))

	items := c.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "prod-a", items[0].ProductID)
	assert.True(t, decimal.NewFromInt(220).Equal(items[0].TotalPrice))

	c.Items[0].Customizations["opt-0"] = Customization{VariantID: "changed"}
	assert.Equal(t, "var-0", items[0].Customizations["opt-0"].VariantID)
}

func TestCheckoutPhase_Sequence(t *testing.T) {
	assert.Equal(t, PhaseShipping, PhaseInformation.Next())
	assert.Equal(t, PhasePayment, PhaseShipping.Next())
	assert.Equal(t, PhasePayment, PhasePayment.Next())
	assert.Equal(t, PhaseShipping, PhasePayment.Back())
	assert.Equal(t, PhaseInformation, PhaseShipping.Back())
	assert.Equal(t, PhaseInformation, PhaseInformation.Back())
	assert.False(t, CheckoutPhase("review").Valid())
}
