// Package catalog serves the product list and resolves customization choices to prices.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownOption   = errors.New("unknown customization")
)

type file struct {
	Currency string           `yaml:"currency"`
	Format   string           `yaml:"format"`
	Products []domain.Product `yaml:"products"`
}

type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Load reads a YAML catalog. Product currency and format fall back to the file-level values.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if f.Currency == "" {
		f.Currency = domain.DefaultCurrency
	}
	for i := range f.Products {
		if f.Products[i].Currency == "" {
			f.Products[i].Currency = f.Currency
		}
		if f.Products[i].Format == "" {
			f.Products[i].Format = f.Format
		}
	}
	return New(f.Products)
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{products: products, byID: make(map[string]int, len(products))}
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if !p.BasePrice.IsPositive() {
			return nil, fmt.Errorf("product %q must have a positive base price", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// Resolve looks up the product and turns option-id → variant-id choices into
// priced customizations.
func (c *Catalog) Resolve(productID string, choices map[string]string) (domain.Product, map[string]domain.Customization, error) {
	p, err := c.Get(productID)
	if err != nil {
		return domain.Product{}, nil, err
	}

	custom := make(map[string]domain.Customization, len(choices))
	for optionID, variantID := range choices {
		opt, ok := p.Option(optionID)
		if !ok {
			return domain.Product{}, nil, fmt.Errorf("%w: option %q", ErrUnknownOption, optionID)
		}
		v, ok := opt.Variant(variantID)
		if !ok {
			return domain.Product{}, nil, fmt.Errorf("%w: variant %q of %q", ErrUnknownOption, variantID, optionID)
		}
		custom[optionID] = domain.Customization{
			VariantID:   v.ID,
			VariantName: v.Name,
			PriceDelta:  v.PriceDelta,
		}
	}
	return p, custom, nil
}
