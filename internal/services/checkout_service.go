package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/session"
	"storefront/internal/validation"
)

type CheckoutConfig struct {
	Currency     string
	CODSurcharge decimal.Decimal
	// PendingTTL bounds how long an online checkout waits for the widget callback.
	PendingTTL time.Duration
	Theme      string
}

type CheckoutService struct {
	carts    *cart.Service
	orders   *OrderService
	gateway  infra.PaymentGatewayInterface
	verifier SignatureVerifier
	store    session.Store
	cfg      CheckoutConfig
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewCheckoutService wires the orchestrator. A nil gateway disables online payment.
func NewCheckoutService(carts *cart.Service, orders *OrderService, gw infra.PaymentGatewayInterface, v SignatureVerifier, store session.Store, cfg CheckoutConfig, log logrus.FieldLogger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		gateway:  gw,
		verifier: v,
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func pendingKey(gatewayOrderID string) string {
	return "checkout:" + gatewayOrderID
}

// ValidatePhase checks the fields owned by phase and returns the phase that follows it.
func (s *CheckoutService) ValidatePhase(phase domain.CheckoutPhase, form domain.CheckoutForm) (domain.CheckoutPhase, error) {
	var err error
	switch phase {
	case domain.PhaseInformation:
		_, err = checkInformation(form)
	case domain.PhaseShipping:
		_, err = validation.Address(form.ShippingAddress)
	case domain.PhasePayment:
		err = s.checkMethod(form.PaymentMethod)
	default:
		return phase, domain.Invalid("unknown checkout phase %q", phase)
	}
	if err != nil {
		return phase, err
	}
	return phase.Next(), nil
}

func checkInformation(form domain.CheckoutForm) (domain.CheckoutForm, error) {
	form.Name = validation.Clean(form.Name)
	form.Email = strings.ToLower(validation.Clean(form.Email))
	form.Phone = strings.ReplaceAll(validation.Clean(form.Phone), " ", "")
	switch {
	case form.Name == "":
		return form, domain.Invalid("name is required")
	case !validation.Email(form.Email):
		return form, domain.Invalid("a valid email is required")
	case !validation.TenDigits(form.Phone):
		return form, domain.Invalid("phone must be exactly 10 digits")
	}
	return form, nil
}

func (s *CheckoutService) checkMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return domain.Invalid("payment method must be cod or online")
	}
	if m == domain.PaymentOnline && s.gateway == nil {
		return ErrPaymentsDisabled
	}
	return nil
}

func (s *CheckoutService) validateForm(form domain.CheckoutForm) (domain.CheckoutForm, error) {
	form, err := checkInformation(form)
	if err != nil {
		return form, err
	}
	if form.ShippingAddress, err = validation.Address(form.ShippingAddress); err != nil {
		return form, err
	}
	if err := s.checkMethod(form.PaymentMethod); err != nil {
		return form, err
	}
	form.Notes = validation.CleanText(form.Notes)
	return form, nil
}

// Submit places a cash-on-delivery order immediately, or reserves a gateway order
// and returns what the client needs to collect an online payment.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, form domain.CheckoutForm) (*domain.CheckoutResult, error) {
	form, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	currency := c.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}

	if form.PaymentMethod == domain.PaymentCOD {
		total := c.Subtotal.Add(s.cfg.CODSurcharge)
		order, err := s.orders.Create(ctx, draftFrom(form, c.Snapshot(), c.Subtotal, total))
		if err != nil {
			return nil, err
		}
		s.clearCart(ctx, sessionID)
		return &domain.CheckoutResult{Confirmation: confirmationOf(order)}, nil
	}

	total := c.Subtotal
	receipt := "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	gwOrder, err := s.gateway.CreateOrder(ctx, total, currency, receipt, map[string]string{
		"customer_email": form.Email,
		"customer_name":  form.Name,
	})
	if err != nil {
		s.log.WithError(err).WithField("receipt", receipt).Error("gateway order creation failed")
		return nil, err
	}

	pending := domain.PendingCheckout{
		SessionID:      sessionID,
		GatewayOrderID: gwOrder.ID,
		Form:           form,
		Items:          c.Snapshot(),
		Subtotal:       c.Subtotal,
		Total:          total,
		Currency:       currency,
		CreatedAt:      s.now(),
	}
	data, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending checkout: %w", err)
	}
	if err := s.store.Set(ctx, pendingKey(gwOrder.ID), data, s.cfg.PendingTTL); err != nil {
		return nil, fmt.Errorf("failed to store pending checkout: %w", err)
	}

	s.log.WithFields(logrus.Fields{"gatewayOrderId": gwOrder.ID, "amount": gwOrder.Amount}).Info("awaiting online payment")
	return &domain.CheckoutResult{Payment: &domain.PaymentHandoff{
		GatewayOrderID: gwOrder.ID,
		KeyID:          s.gateway.KeyID(),
		Amount:         gwOrder.Amount,
		Currency:       currency,
		Total:          total,
		Prefill:        domain.Prefill{Name: form.Name, Email: form.Email, Contact: form.Phone},
		Theme:          s.cfg.Theme,
	}}, nil
}

// ResolvePayment settles a pending online checkout with what the widget reported.
// Only a completed outcome whose signature verifies produces an order. It returns
// a nil confirmation for cancelled and aborted outcomes.
func (s *CheckoutService) ResolvePayment(ctx context.Context, sessionID string, outcome domain.PaymentOutcome) (*domain.Confirmation, error) {
	if outcome.GatewayOrderID == "" && outcome.Assertion != nil {
		outcome.GatewayOrderID = outcome.Assertion.GatewayOrderID
	}
	if outcome.GatewayOrderID == "" {
		return nil, domain.Invalid("gatewayOrderId is required")
	}

	pending, err := s.loadPending(ctx, outcome.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if pending.SessionID != sessionID {
		return nil, ErrCheckoutNotFound
	}
	log := s.log.WithField("gatewayOrderId", pending.GatewayOrderID)

	switch outcome.Kind {
	case domain.OutcomeCancelled, domain.OutcomeAborted:
		log.WithField("outcome", outcome.Kind).Info("online payment not completed")
		s.dropPending(ctx, pending.GatewayOrderID)
		return nil, nil
	case domain.OutcomeCompleted:
	default:
		return nil, domain.Invalid("unknown payment outcome %q", outcome.Kind)
	}

	a := outcome.Assertion
	if a == nil || a.PaymentID == "" || a.Signature == "" {
		return nil, domain.Invalid("paymentId and signature are required")
	}
	if a.GatewayOrderID != "" && a.GatewayOrderID != pending.GatewayOrderID {
		return nil, ErrSignatureMismatch
	}
	if !s.verifier.Verify(pending.GatewayOrderID, a.PaymentID, a.Signature) {
		log.WithField("paymentId", a.PaymentID).Warn("payment signature mismatch")
		return nil, ErrSignatureMismatch
	}

	draft := draftFrom(pending.Form, pending.Items, pending.Subtotal, pending.Total)
	draft.GatewayOrderID = pending.GatewayOrderID
	draft.GatewayPaymentID = a.PaymentID
	draft.GatewaySignature = a.Signature
	order, err := s.orders.Create(ctx, draft)
	if err != nil {
		log.WithError(err).WithField("paymentId", a.PaymentID).Error("payment captured but order not saved")
		return nil, err
	}

	s.clearCart(ctx, sessionID)
	s.dropPending(ctx, pending.GatewayOrderID)
	return confirmationOf(order), nil
}

func (s *CheckoutService) loadPending(ctx context.Context, gatewayOrderID string) (*domain.PendingCheckout, error) {
	raw, err := s.store.Get(ctx, pendingKey(gatewayOrderID))
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending checkout: %w", err)
	}
	var p domain.PendingCheckout
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.WithError(err).WithField("gatewayOrderId", gatewayOrderID).Warn("discarding malformed pending checkout")
		s.dropPending(ctx, gatewayOrderID)
		return nil, ErrCheckoutNotFound
	}
	return &p, nil
}

func (s *CheckoutService) dropPending(ctx context.Context, gatewayOrderID string) {
	if err := s.store.Delete(ctx, pendingKey(gatewayOrderID)); err != nil {
		s.log.WithError(err).WithField("gatewayOrderId", gatewayOrderID).Warn("failed to drop pending checkout")
	}
}

// clearCart runs after the order is stored, so a failure is logged rather than returned.
func (s *CheckoutService) clearCart(ctx context.Context, sessionID string) {
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.log.WithError(err).Warn("failed to clear cart after order")
	}
}

func draftFrom(form domain.CheckoutForm, items []domain.OrderItem, subtotal, total decimal.Decimal) OrderDraft {
	return OrderDraft{
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		ShippingAddress: form.ShippingAddress,
		Items:           items,
		Subtotal:        subtotal,
		Total:           total,
		PaymentMethod:   form.PaymentMethod,
		Notes:           form.Notes,
	}
}

func confirmationOf(o *domain.Order) *domain.Confirmation {
	return &domain.Confirmation{
		OrderNumber:   o.OrderNumber,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
	}
}
