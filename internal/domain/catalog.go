package domain

import "github.com/shopspring/decimal"

type Variant struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta" yaml:"priceDelta"`
}

type Option struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Variants []Variant `json:"variants" yaml:"variants"`
}

type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Image       string          `json:"image,omitempty" yaml:"image"`
	Category    string          `json:"category,omitempty" yaml:"category"`
	BasePrice   decimal.Decimal `json:"basePrice" yaml:"basePrice"`
	Currency    string          `json:"currency" yaml:"currency"`
	Format      string          `json:"format,omitempty" yaml:"format"`
	Options     []Option        `json:"options,omitempty" yaml:"options"`
}

func (p Product) Option(id string) (Option, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (o Option) Variant(id string) (Variant, bool) {
	for _, v := range o.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
