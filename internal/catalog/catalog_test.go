package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

const testCatalog = `
currency: INR
format: "₹{{amount}}"
products:
  - id: keychain
    name: Keychain
    basePrice: 199
    options:
      - id: color
        name: Colour
        variants:
          - id: black
            name: Black
            priceDelta: 0
          - id: glow
            name: Glow
            priceDelta: 49.50
  - id: lamp
    name: Lamp
    basePrice: 1499
    currency: USD
`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	c, err := Load(path)
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)

	products := c.List()
	require.Len(t, products, 2)

	k, err := c.Get("keychain")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(199).Equal(k.BasePrice))
	assert.Equal(t, "INR", k.Currency)
	assert.Equal(t, "₹{{amount}}", k.Format)

	l, err := c.Get("lamp")
	require.NoError(t, err)
	assert.Equal(t, "USD", l.Currency)
}

func TestLoad_ShippedCatalog(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs", "catalog.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.List())
}

func TestResolve(t *testing.T) {
	c := loadTestCatalog(t)

	p, custom, err := c.Resolve("keychain", map[string]string{"color": "glow"})
	require.NoError(t, err)
	assert.Equal(t, "Keychain", p.Name)
	require.Contains(t, custom, "color")
	assert.Equal(t, "Glow", custom["color"].VariantName)
	assert.True(t, decimal.RequireFromString("49.5").Equal(custom["color"].PriceDelta))

	_, custom, err = c.Resolve("lamp", nil)
	require.NoError(t, err)
	assert.Empty(t, custom)

	_, _, err = c.Resolve("missing", nil)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, _, err = c.Resolve("keychain", map[string]string{"size": "large"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, _, err = c.Resolve("keychain", map[string]string{"color": "red"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestNew_Rejects(t *testing.T) {
	one := decimal.NewFromInt(1)

	_, err := New([]domain.Product{{ID: "", BasePrice: one}})
	assert.Error(t, err)

	_, err = New([]domain.Product{{ID: "a", BasePrice: one}, {ID: "a", BasePrice: one}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]domain.Product{{ID: "a", BasePrice: decimal.Zero}})
	assert.ErrorContains(t, err, "positive base price")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read catalog")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: {"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse catalog")
}
