package domain

import "github.com/shopspring/decimal"

// Customization is the variant chosen for one customization option of a product.
type Customization struct {
	VariantID   string          `json:"variantId"`
	VariantName string          `json:"variantName"`
	PriceDelta  decimal.Decimal `json:"priceDelta"`
}

type CartItem struct {
	ID             string                   `json:"id"`
	ProductID      string                   `json:"productId"`
	Name           string                   `json:"name"`
	Image          string                   `json:"image,omitempty"`
	BasePrice      decimal.Decimal          `json:"basePrice"`
	Quantity       int                      `json:"quantity"`
	Customizations map[string]Customization `json:"customizations,omitempty"`
	TotalPrice     decimal.Decimal          `json:"totalPrice"`
	Currency       string                   `json:"currency"`
	Format         string                   `json:"format,omitempty"`
}

// UnitPrice is the base price plus every customization delta.
func (i CartItem) UnitPrice() decimal.Decimal {
	price := i.BasePrice
	for _, c := range i.Customizations {
		price = price.Add(c.PriceDelta)
	}
	return price
}

func (i *CartItem) Recalculate() {
	i.TotalPrice = i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) Snapshot() OrderItem {
	custom := make(map[string]Customization, len(i.Customizations))
	for k, v := range i.Customizations {
		custom[k] = v
	}
	return OrderItem{
		ID:             i.ID,
		ProductID:      i.ProductID,
		Name:           i.Name,
		Image:          i.Image,
		BasePrice:      i.BasePrice,
		Quantity:       i.Quantity,
		Customizations: custom,
		TotalPrice:     i.TotalPrice,
		Currency:       i.Currency,
	}
}

type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Currency   string          `json:"currency"`
}

func NewCart(currency string) *Cart {
	return &Cart{Items: []CartItem{}, Currency: currency}
}

// Recalculate drops lines with a non-positive quantity and rebuilds every total.
func (c *Cart) Recalculate() {
	kept := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Quantity < 1 {
			continue
		}
		item.Recalculate()
		kept = append(kept, item)
	}
	c.Items = kept

	c.TotalItems = 0
	c.Subtotal = decimal.Zero
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.Subtotal = c.Subtotal.Add(item.TotalPrice)
	}
	if len(c.Items) > 0 && c.Items[0].Currency != "" {
		c.Currency = c.Items[0].Currency
	}
}

func (c *Cart) Add(item CartItem) {
	c.Items = append(c.Items, item)
	c.Recalculate()
}

func (c *Cart) Remove(itemID string) bool {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return true
		}
	}
	return false
}

// SetQuantity removes the line when qty < 1.
func (c *Cart) SetQuantity(itemID string, qty int) bool {
	if qty < 1 {
		return c.Remove(itemID)
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = qty
			c.Recalculate()
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Snapshot() []OrderItem {
	out := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, item.Snapshot())
	}
	return out
}
