// Package cart keeps one cart per client session in the session store.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/session"
)

var ErrItemNotFound = errors.New("cart item not found")

const maxQuantity = 100

type AddItem struct {
	ProductID string
	// Customizations maps option id to the chosen variant id.
	Customizations map[string]string
	Quantity       int
}

type Service struct {
	store    session.Store
	catalog  *catalog.Catalog
	ttl      time.Duration
	currency string
	log      logrus.FieldLogger
}

func NewService(store session.Store, c *catalog.Catalog, ttl time.Duration, currency string, log logrus.FieldLogger) *Service {
	return &Service{store: store, catalog: c, ttl: ttl, currency: currency, log: log}
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

// Get returns the session's cart. Unreadable stored data yields an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	raw, err := s.store.Get(ctx, key(sessionID))
	if errors.Is(err, session.ErrNotFound) {
		return domain.NewCart(s.currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := domain.NewCart(s.currency)
	if err := json.Unmarshal(raw, c); err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("discarding malformed cart")
		return domain.NewCart(s.currency), nil
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	if c.Currency == "" {
		c.Currency = s.currency
	}
	c.Recalculate()
	return c, nil
}

func (s *Service) save(ctx context.Context, sessionID string, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(ctx, key(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Add prices the item from the catalog and appends it as a new line.
func (s *Service) Add(ctx context.Context, sessionID string, in AddItem) (*domain.Cart, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 || in.Quantity > maxQuantity {
		return nil, domain.Invalid("quantity must be between 1 and %d", maxQuantity)
	}

	product, custom, err := s.catalog.Resolve(in.ProductID, in.Customizations)
	if err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(domain.CartItem{
		ID:             uuid.NewString(),
		ProductID:      product.ID,
		Name:           product.Name,
		Image:          product.Image,
		BasePrice:      product.BasePrice,
		Quantity:       in.Quantity,
		Customizations: custom,
		Currency:       product.Currency,
		Format:         product.Format,
	})
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.Remove(itemID) {
		return nil, ErrItemNotFound
	}
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity replaces a line's quantity. A quantity below 1 removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID, itemID string, qty int) (*domain.Cart, error) {
	if qty > maxQuantity {
		return nil, domain.Invalid("quantity must not exceed %d", maxQuantity)
	}
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.SetQuantity(itemID, qty) {
		return nil, ErrItemNotFound
	}
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, key(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
