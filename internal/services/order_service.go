package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
	"storefront/internal/retry"
	"storefront/internal/validation"
)

const orderNumberAttempts = 3

type SignatureVerifier interface {
	Verify(gatewayOrderID, paymentID, signature string) bool
}

// OrderDraft is an order as submitted, before sanitization and numbering.
type OrderDraft struct {
	CustomerName     string                 `json:"customerName"`
	CustomerEmail    string                 `json:"customerEmail"`
	CustomerPhone    string                 `json:"customerPhone"`
	ShippingAddress  domain.ShippingAddress `json:"shippingAddress"`
	Items            []domain.OrderItem     `json:"items"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	Total            decimal.Decimal        `json:"total"`
	PaymentMethod    domain.PaymentMethod   `json:"paymentMethod"`
	GatewayOrderID   string                 `json:"gatewayOrderId"`
	GatewayPaymentID string                 `json:"gatewayPaymentId"`
	GatewaySignature string                 `json:"gatewaySignature"`
	Notes            string                 `json:"notes"`
}

type OrderService struct {
	repo      repository.OrderRepository
	verifier  SignatureVerifier
	publisher rabbit.PublisherInterface
	admin     AdminGuard
	log       logrus.FieldLogger
	retry     retry.Policy
	now       func() time.Time
	newNumber func(time.Time) string
	pending   sync.WaitGroup
}

func NewOrderService(r repository.OrderRepository, v SignatureVerifier, pub rabbit.PublisherInterface, admin AdminGuard, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		repo:      r,
		verifier:  v,
		publisher: pub,
		admin:     admin,
		log:       log,
		retry:     retry.DefaultPolicy,
		now:       time.Now,
		newNumber: NewOrderNumber,
	}
}

// Create validates and sanitizes the draft, numbers it and stores it.
// Online drafts carrying a payment id must carry a valid signature for it.
func (s *OrderService) Create(ctx context.Context, d OrderDraft) (*domain.Order, error) {
	order, err := s.prepare(d)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		order.OrderNumber = s.newNumber(s.now())
		err = s.repo.Save(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateKey) && s.paymentRecorded(ctx, order) {
			s.log.WithField("gatewayPaymentId", *order.GatewayPaymentID).Warn("rejecting replayed payment")
			return nil, ErrPaymentRecorded
		}
		if !errors.Is(err, repository.ErrDuplicateKey) || attempt == orderNumberAttempts {
			s.log.WithError(err).WithField("orderNumber", order.OrderNumber).Error("failed to save order")
			return nil, err
		}
		s.log.WithField("orderNumber", order.OrderNumber).Warn("order number collision, regenerating")
	}

	s.log.WithFields(logrus.Fields{
		"orderNumber":   order.OrderNumber,
		"paymentMethod": order.PaymentMethod,
		"paymentStatus": order.PaymentStatus,
	}).Info("order created")

	s.publishAsync(domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	})
	return order, nil
}

// paymentRecorded reports whether a duplicate-key failure came from the order's
// gateway payment id rather than its number.
func (s *OrderService) paymentRecorded(ctx context.Context, order *domain.Order) bool {
	if order.GatewayPaymentID == nil {
		return false
	}
	existing, err := s.repo.FindByPaymentID(ctx, *order.GatewayPaymentID)
	if err != nil {
		s.log.WithError(err).Warn("failed to look up payment id after duplicate key")
		return false
	}
	return existing != nil
}

func (s *OrderService) prepare(d OrderDraft) (*domain.Order, error) {
	name := validation.Clean(d.CustomerName)
	email := strings.ToLower(validation.Clean(d.CustomerEmail))
	phone := strings.ReplaceAll(validation.Clean(d.CustomerPhone), " ", "")
	if err := validation.Contact(name, email, phone, false); err != nil {
		return nil, err
	}

	if len(d.Items) == 0 {
		return nil, domain.Invalid("at least one item is required")
	}
	items := make([]domain.OrderItem, len(d.Items))
	for i, item := range d.Items {
		if item.Quantity < 1 {
			return nil, domain.Invalid("item %d quantity must be at least 1", i+1)
		}
		item.Name = validation.Clean(item.Name)
		items[i] = item
	}

	if !validation.Amount(d.Subtotal) {
		return nil, domain.Invalid("subtotal must be between 0 and %s", validation.MaxAmount)
	}
	if !validation.Amount(d.Total) {
		return nil, domain.Invalid("total must be between 0 and %s", validation.MaxAmount)
	}

	addr, err := validation.Address(d.ShippingAddress)
	if err != nil {
		return nil, err
	}

	method := d.PaymentMethod
	if method == "" {
		method = domain.PaymentCOD
	}
	if !method.Valid() {
		return nil, domain.Invalid("payment method must be cod or online")
	}

	order := &domain.Order{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ShippingAddress: addr,
		Items:           items,
		Subtotal:        d.Subtotal,
		Tax:             decimal.Zero,
		Shipping:        decimal.Zero,
		Total:           d.Total,
		Status:          domain.StatusPending,
		PaymentMethod:   method,
		PaymentStatus:   domain.PaymentPending,
		Notes:           validation.CleanText(d.Notes),
		CreatedAt:       s.now(),
	}

	if method == domain.PaymentOnline && d.GatewayPaymentID != "" {
		if !s.verifier.Verify(d.GatewayOrderID, d.GatewayPaymentID, d.GatewaySignature) {
			s.log.WithField("gatewayOrderId", d.GatewayOrderID).Warn("rejecting order with invalid payment signature")
			return nil, ErrSignatureMismatch
		}
		order.PaymentStatus = domain.PaymentCompleted
		order.GatewayOrderID = d.GatewayOrderID
		paymentID := d.GatewayPaymentID
		order.GatewayPaymentID = &paymentID
		order.GatewaySignature = d.GatewaySignature
	}
	return order, nil
}

// Authorize checks the admin secret alone, so callers can reject a request
// before looking at its payload.
func (s *OrderService) Authorize(secret string) error {
	return s.admin.Check(secret)
}

// GetByNumber is the public lookup behind the confirmation view.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var o *domain.Order
	err := s.retry.Do(ctx, func() (err error) {
		o, err = s.repo.FindByNumber(ctx, orderNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, secret string) ([]domain.Order, error) {
	if err := s.admin.Check(secret); err != nil {
		return nil, err
	}
	var out []domain.Order
	err := s.retry.Do(ctx, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, secret string, id uint64, status domain.OrderStatus) error {
	if err := s.admin.Check(secret); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	var found bool
	err := s.retry.Do(ctx, func() (err error) {
		found, err = s.repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}

	s.log.WithFields(logrus.Fields{"orderId": id, "status": status}).Info("order status updated")
	s.publishAsync(domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   id,
		Status:    status,
		ChangedAt: s.now(),
	})
	return nil
}

func (s *OrderService) Delete(ctx context.Context, secret string, id uint64) error {
	if err := s.admin.Check(secret); err != nil {
		return err
	}
	var found bool
	err := s.retry.Do(ctx, func() (err error) {
		found, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	s.log.WithField("orderId", id).Info("order deleted")
	return nil
}

func (s *OrderService) publishAsync(pattern string, evt any) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.publisher.Publish(context.Background(), pattern, evt); err != nil {
			s.log.WithError(err).WithField("pattern", pattern).Error("failed to publish event")
		}
	}()
}

// Wait blocks until every in-flight event publish has returned.
func (s *OrderService) Wait() {
	s.pending.Wait()
}
