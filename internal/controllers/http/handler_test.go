package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/logging"
	"storefront/internal/mocks"
	"storefront/internal/payment"
	"storefront/internal/ratelimit"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/internal/session"
)

const (
	testAdminKey = "admin-secret"
	testSession  = "session-abc"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	orders    *mocks.MockOrderRepository
	requests  *mocks.MockRecordRepository[domain.CustomRequest]
	contacts  *mocks.MockRecordRepository[domain.ContactSubmission]
	calls     *mocks.MockRecordRepository[domain.BookedCall]
	gateway   *mocks.MockGateway
	signer    *payment.Verifier
	orderSvc  *services.OrderService
	rateLimit int
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	log := logging.Discard()
	pub := rabbitmq.NopPublisher{Log: log}
	guard := services.NewAdminGuard(testAdminKey)

	cat, err := catalog.New([]domain.Product{{
		ID:        "keychain",
		Name:      "Keychain",
		BasePrice: decimal.NewFromInt(199),
		Currency:  "INR",
		Options: []domain.Option{{
			ID:       "color",
			Name:     "Colour",
			Variants: []domain.Variant{{ID: "glow", Name: "Glow", PriceDelta: decimal.NewFromInt(51)}},
		}},
	}})
	require.NoError(t, err)

	ts := &testServer{
		orders:    new(mocks.MockOrderRepository),
		requests:  new(mocks.MockRecordRepository[domain.CustomRequest]),
		contacts:  new(mocks.MockRecordRepository[domain.ContactSubmission]),
		calls:     new(mocks.MockRecordRepository[domain.BookedCall]),
		gateway:   new(mocks.MockGateway),
		signer:    payment.NewVerifier("gw-secret"),
		rateLimit: rateLimit,
	}

	store := session.NewMemoryStore()
	carts := cart.NewService(store, cat, time.Hour, "INR", log)
	ts.orderSvc = services.NewOrderService(ts.orders, ts.signer, pub, guard, log)
	checkout := services.NewCheckoutService(carts, ts.orderSvc, ts.gateway, ts.signer, store, services.CheckoutConfig{
		Currency:     "INR",
		CODSurcharge: decimal.NewFromInt(25),
		PendingTTL:   time.Minute,
	}, log)

	h := NewHandler(Deps{
		Catalog:        cat,
		Carts:          carts,
		Checkout:       checkout,
		Orders:         ts.orderSvc,
		Gateway:        ts.gateway,
		Verifier:       ts.signer,
		CustomRequests: services.NewIntakeService[domain.CustomRequest, *domain.CustomRequest](ts.requests, pub, guard, log),
		Contacts:       services.NewIntakeService[domain.ContactSubmission, *domain.ContactSubmission](ts.contacts, pub, guard, log),
		BookedCalls:    services.NewIntakeService[domain.BookedCall, *domain.BookedCall](ts.calls, pub, guard, log),
		Currency:       "INR",
	}, ratelimit.New(rateLimit, time.Minute), log)

	ts.router, err = NewEngine(nil, log)
	require.NoError(t, err)
	h.RegisterRoutes(ts.router)
	t.Cleanup(ts.orderSvc.Wait)
	return ts
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(SessionHeader, testSession)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 10)
	w := ts.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProducts(t *testing.T) {
	ts := newTestServer(t, 10)

	w := ts.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["products"], 1)

	w = ts.do(http.MethodGet, "/api/products/keychain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 199.0, decode(t, w)["basePrice"])

	w = ts.do(http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHeaderIssued(t *testing.T) {
	ts := newTestServer(t, 10)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(SessionHeader))
}

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t, 10)

	w := ts.do(http.MethodPost, "/api/cart/items", gin.H{"productId": "keychain", "customizations": gin.H{"color": "glow"}, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["open"])
	assert.Equal(t, 500.0, body["subtotal"])
	assert.Equal(t, 2.0, body["totalItems"])
	assert.Equal(t, testSession, w.Header().Get(SessionHeader))

	items := body["items"].([]any)
	require.Len(t, items, 1)
	itemID := items[0].(map[string]any)["id"].(string)

	w = ts.do(http.MethodPatch, "/api/cart/items/"+itemID, gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 750.0, decode(t, w)["subtotal"])

	w = ts.do(http.MethodPatch, "/api/cart/items/"+itemID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/api/cart/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, "/api/cart/items/"+itemID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode(t, w)["totalItems"])

	w = ts.do(http.MethodPost, "/api/cart/items", gin.H{"productId": "keychain", "customizations": gin.H{"color": "red"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func checkoutForm(method domain.PaymentMethod) gin.H {
	return gin.H{
		"name":  "Asha Patil",
		"email": "buyer@example.com",
		"phone": "9876543210",
		"shippingAddress": gin.H{
			"street": "12 FC Road", "city": "Pune", "state": "Maharashtra", "postalCode": "411001", "country": "India",
		},
		"paymentMethod": method,
	}
}

func TestCheckoutCOD(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 1
	}).Once()

	w := ts.do(http.MethodPost, "/api/cart/items", gin.H{"productId": "keychain", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/checkout", checkoutForm(domain.PaymentCOD))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	conf := decode(t, w)["confirmation"].(map[string]any)
	assert.Equal(t, 224.0, conf["total"])
	assert.Equal(t, "cod", conf["paymentMethod"])
	assert.Regexp(t, `^ORD-\d+-[A-Z0-9]+$`, conf["orderNumber"])

	w = ts.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0.0, decode(t, w)["totalItems"])

	w = ts.do(http.MethodPost, "/api/checkout", checkoutForm(domain.PaymentCOD))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.orders.AssertExpectations(t)
}

func TestCheckoutOnline(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.gateway.On("CreateOrder", mock.Anything, mock.Anything, "INR", mock.Anything, mock.Anything).
		Return(&infra.GatewayOrder{ID: "order_1", Amount: 19900, Currency: "INR"}, nil).Once()
	ts.gateway.On("KeyID").Return("rzp_test")

	ts.do(http.MethodPost, "/api/cart/items", gin.H{"productId": "keychain"})
	w := ts.do(http.MethodPost, "/api/checkout", checkoutForm(domain.PaymentOnline))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	handoff := decode(t, w)["payment"].(map[string]any)
	assert.Equal(t, "order_1", handoff["gatewayOrderId"])
	assert.Equal(t, 19900.0, handoff["amount"])
	assert.Equal(t, "rzp_test", handoff["keyId"])

	w = ts.do(http.MethodPost, "/api/checkout/payment", gin.H{
		"outcome": "completed", "gatewayOrderId": "order_1", "paymentId": "pay_1", "signature": "forged",
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	ts.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	ts.orders.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	w = ts.do(http.MethodPost, "/api/checkout/payment", gin.H{
		"outcome": "completed", "gatewayOrderId": "order_1", "paymentId": "pay_1", "signature": ts.signer.Sign("order_1", "pay_1"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	conf := decode(t, w)["confirmation"].(map[string]any)
	assert.Equal(t, "completed", conf["paymentStatus"])
	assert.Equal(t, 199.0, conf["total"])

	w = ts.do(http.MethodPost, "/api/checkout/payment", gin.H{"outcome": "cancelled", "gatewayOrderId": "order_1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: upstream status 503", infra.ErrCreateGatewayOrder))

	ts.do(http.MethodPost, "/api/cart/items", gin.H{"productId": "keychain"})
	w := ts.do(http.MethodPost, "/api/checkout", checkoutForm(domain.PaymentOnline))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "503")
}

func TestValidateCheckoutPhase(t *testing.T) {
	ts := newTestServer(t, 10)

	form := checkoutForm(domain.PaymentCOD)
	form["phase"] = "information"
	w := ts.do(http.MethodPost, "/api/checkout/validate", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shipping", decode(t, w)["next"])

	form["phone"] = "12345"
	w = ts.do(http.MethodPost, "/api/checkout/validate", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentEndpoints(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("2499.5"))
	}), "INR", "rcpt_1", mock.Anything).Return(&infra.GatewayOrder{ID: "order_9", Amount: 249950, Currency: "INR"}, nil).Once()
	ts.gateway.On("KeyID").Return("rzp_test")

	w := ts.do(http.MethodPost, "/api/payment/create-order", gin.H{"amount": 2499.5, "receipt": "rcpt_1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "order_9", body["id"])
	assert.Equal(t, 249950.0, body["amount"])

	w = ts.do(http.MethodPost, "/api/payment/create-order", gin.H{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/payment/verify", gin.H{"orderId": "order_9", "paymentId": "pay_9", "signature": ts.signer.Sign("order_9", "pay_9")})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["verified"])

	w = ts.do(http.MethodPost, "/api/payment/verify", gin.H{"orderId": "order_9", "paymentId": "pay_8", "signature": ts.signer.Sign("order_9", "pay_9")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["verified"])

	w = ts.do(http.MethodPost, "/api/payment/verify", gin.H{"orderId": "order_9"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.gateway.AssertExpectations(t)
}

func TestCreateOrder(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.orders.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 5
	}).Once()

	draft := gin.H{
		"customerName":    "Asha",
		"customerEmail":   "buyer@example.com",
		"customerPhone":   "9876543210",
		"shippingAddress": gin.H{"street": "1 MG Road", "city": "Pune", "state": "MH", "postalCode": "411001", "country": "India"},
		"items":           []gin.H{{"id": "l1", "productId": "keychain", "name": "Keychain", "basePrice": 1249.5, "quantity": 2, "totalPrice": 2499}},
		"subtotal":        2499,
		"total":           2499,
		"paymentMethod":   "cod",
	}
	w := ts.do(http.MethodPost, "/api/orders", draft)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 5.0, body["id"])
	assert.Equal(t, "pending", body["paymentStatus"])

	draft["customerEmail"] = "not-an-email"
	w = ts.do(http.MethodPost, "/api/orders", draft)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "email")
}

func TestCreateOrder_ReplayedPayment(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.orders.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	ts.orders.On("Save", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey).Once()
	ts.orders.On("FindByPaymentID", mock.Anything, "pay_1").Return(&domain.Order{ID: 1}, nil).Once()

	draft := gin.H{
		"customerName":     "Asha",
		"customerEmail":    "buyer@example.com",
		"shippingAddress":  gin.H{"street": "1 MG Road", "city": "Pune", "state": "MH", "postalCode": "411001", "country": "India"},
		"items":            []gin.H{{"id": "l1", "productId": "keychain", "name": "Keychain", "basePrice": 199, "quantity": 1, "totalPrice": 199}},
		"subtotal":         199,
		"total":            199,
		"paymentMethod":    "online",
		"gatewayOrderId":   "order_1",
		"gatewayPaymentId": "pay_1",
		"gatewaySignature": ts.signer.Sign("order_1", "pay_1"),
	}
	w := ts.do(http.MethodPost, "/api/orders", draft)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["paymentStatus"])

	w = ts.do(http.MethodPost, "/api/orders", draft)
	assert.Equal(t, http.StatusConflict, w.Code)
	ts.orders.AssertExpectations(t)
}

func TestGetOrder(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.orders.On("FindByNumber", mock.Anything, "ORD-1-ABC").Return(&domain.Order{ID: 1, OrderNumber: "ORD-1-ABC", GatewaySignature: "sig"}, nil)
	ts.orders.On("FindByNumber", mock.Anything, "ORD-2-XYZ").Return(nil, nil)

	w := ts.do(http.MethodGet, "/api/orders/ORD-1-ABC", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "gatewaySignature")

	w = ts.do(http.MethodGet, "/api/orders/ORD-2-XYZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRejectsWrongSecret(t *testing.T) {
	ts := newTestServer(t, 10)

	for _, base := range []string{"/api/admin/orders", "/api/admin/custom-requests", "/api/admin/contact", "/api/admin/booked-calls"} {
		t.Run(base, func(t *testing.T) {
			for _, creds := range [][]string{nil, {AdminKeyHeader, "wrong"}} {
				w := ts.do(http.MethodGet, base+"?adminKey=nope", nil, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

				w = ts.do(http.MethodPatch, base+"/1/status", gin.H{"status": "cancelled", "adminKey": "wrong"}, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				w = ts.do(http.MethodDelete, base+"/1", nil, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				// Payload problems never take precedence over a wrong secret.
				w = ts.do(http.MethodPatch, base+"/1/status", gin.H{"adminKey": "wrong"}, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

				w = ts.do(http.MethodPatch, base+"/abc/status", gin.H{"status": "bogus", "adminKey": "wrong"}, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				w = ts.do(http.MethodPatch, base+"/abc/status", nil, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				w = ts.do(http.MethodDelete, base+"/abc", nil, creds...)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			}
		})
	}

	ts.orders.AssertNotCalled(t, "List", mock.Anything)
	ts.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	ts.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Empty(t, ts.requests.Calls)
	assert.Empty(t, ts.contacts.Calls)
	assert.Empty(t, ts.calls.Calls)
}

func TestAdminSecretSources(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.orders.On("List", mock.Anything).Return([]domain.Order{}, nil)
	ts.orders.On("UpdateStatus", mock.Anything, uint64(3), domain.StatusShipped).Return(true, nil)
	ts.orders.On("Delete", mock.Anything, uint64(3)).Return(true, nil)

	w := ts.do(http.MethodGet, "/api/admin/orders?adminKey="+testAdminKey, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/admin/orders", nil, AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/orders/3/status", gin.H{"status": "shipped", "adminKey": testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/orders/3/status", gin.H{"status": "lost", "adminKey": testAdminKey})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/orders/3/status", gin.H{"adminKey": testAdminKey})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/orders/abc/status", gin.H{"status": "shipped"}, AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/api/admin/orders/3", gin.H{"adminKey": testAdminKey})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodDelete, "/api/admin/orders/abc", nil, AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntakeSubmitAndAdmin(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.calls.On("Save", mock.Anything, mock.AnythingOfType("*domain.BookedCall")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.BookedCall).ID = 11
	}).Once()
	ts.calls.On("UpdateStatus", mock.Anything, uint64(11), "confirmed").Return(true, nil).Once()
	ts.calls.On("UpdateStatus", mock.Anything, uint64(12), "confirmed").Return(false, nil).Once()

	w := ts.do(http.MethodPost, "/api/booked-calls", gin.H{
		"id": 99, "name": "Asha", "email": "buyer@example.com", "phone": "9876543210",
		"preferredDate": "2026-11-02", "timeSlot": "10:00-10:30", "status": "completed",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 11.0, body["id"])
	assert.Equal(t, "pending", body["status"])

	w = ts.do(http.MethodPost, "/api/contact", gin.H{"name": "Asha", "email": "buyer@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/booked-calls/11/status", gin.H{"status": "confirmed"}, AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPatch, "/api/admin/booked-calls/12/status", gin.H{"status": "confirmed"}, AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusNotFound, w.Code)
	ts.calls.AssertExpectations(t)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, 2)

	for i := 0; i < ts.rateLimit; i++ {
		w := ts.do(http.MethodPost, "/api/contact", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w := ts.do(http.MethodPost, "/api/contact", gin.H{})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = ts.do(http.MethodPost, "/api/custom-requests", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	ts := newTestServer(t, 2)

	codes := make([]int, 0, 6)
	for i := 1; i <= 6; i++ {
		w := ts.do(http.MethodPost, "/api/contact", gin.H{}, "X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{
		http.StatusBadRequest, http.StatusBadRequest,
		http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestNewEngine_TrustedProxies(t *testing.T) {
	r, err := NewEngine([]string{"192.0.2.1"}, logging.Discard())
	require.NoError(t, err)
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())

	r, err = NewEngine(nil, logging.Discard())
	require.NoError(t, err)
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "192.0.2.1", w.Body.String())

	_, err = NewEngine([]string{"not-an-ip"}, logging.Discard())
	assert.Error(t, err)
}
