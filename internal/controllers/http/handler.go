package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/ratelimit"
	"storefront/internal/services"
)

const (
	msgUnauthorized  = "unauthorized"
	msgPaymentFailed = "Payment verification failed. If money was deducted, please contact support with your payment ID."
	msgGateway       = "Could not start the payment. Please try again."
	msgInternal      = "Something went wrong. Please try again."
)

// Deps are the services the HTTP layer fronts. Gateway may be nil when online
// payment is not configured.
type Deps struct {
	Catalog        *catalog.Catalog
	Carts          *cart.Service
	Checkout       *services.CheckoutService
	Orders         *services.OrderService
	Gateway        infra.PaymentGatewayInterface
	Verifier       services.SignatureVerifier
	CustomRequests *services.IntakeService[domain.CustomRequest, *domain.CustomRequest]
	Contacts       *services.IntakeService[domain.ContactSubmission, *domain.ContactSubmission]
	BookedCalls    *services.IntakeService[domain.BookedCall, *domain.BookedCall]
	Currency       string
}

type Handler struct {
	deps    Deps
	limiter *ratelimit.Limiter
	log     logrus.FieldLogger
}

func NewHandler(d Deps, limiter *ratelimit.Limiter, log logrus.FieldLogger) *Handler {
	return &Handler{deps: d, limiter: limiter, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api", Session())

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)

	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PATCH("/cart/items/:itemId", h.UpdateCartItem)
	api.DELETE("/cart/items/:itemId", h.RemoveCartItem)
	api.DELETE("/cart", h.ClearCart)

	checkout := api.Group("/checkout")
	checkout.POST("/validate", h.ValidateCheckoutPhase)
	checkout.POST("", RateLimit(h.limiter, "checkout"), h.SubmitCheckout)
	checkout.POST("/payment", RateLimit(h.limiter, "checkout"), h.ResolvePayment)

	pay := api.Group("/payment", RateLimit(h.limiter, "payment"))
	pay.POST("/create-order", h.CreatePaymentOrder)
	pay.POST("/verify", h.VerifyPayment)

	api.POST("/orders", RateLimit(h.limiter, "orders"), h.CreateOrder)
	api.GET("/orders/:orderNumber", h.GetOrder)

	admin := api.Group("/admin")
	admin.GET("/orders", h.ListOrders)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.DELETE("/orders/:id", h.DeleteOrder)

	registerIntake(h, api, admin, "/custom-requests", h.deps.CustomRequests)
	registerIntake(h, api, admin, "/contact", h.deps.Contacts)
	registerIntake(h, api, admin, "/booked-calls", h.deps.BookedCalls)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps a service error to its response. Validation messages are shown to the
// client; upstream and internal detail is only logged.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, catalog.ErrUnknownOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrCheckoutNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentRecorded):
		c.JSON(http.StatusConflict, gin.H{"error": "This payment has already been used for an order."})
	case errors.Is(err, services.ErrSignatureMismatch):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": msgPaymentFailed})
	case errors.Is(err, infra.ErrCreateGatewayOrder):
		h.log.WithError(err).WithField("path", c.FullPath()).Error("payment gateway error")
		c.JSON(http.StatusBadGateway, gin.H{"error": msgGateway})
	case errors.Is(err, services.ErrPaymentsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Online payment is currently unavailable."})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// adminKey returns the secret from the query, the header or the decoded body, in that order.
func adminKey(c *gin.Context, fromBody string) string {
	if k := c.Query("adminKey"); k != "" {
		return k
	}
	if k := c.GetHeader(AdminKeyHeader); k != "" {
		return k
	}
	return fromBody
}

// authorize resolves the admin secret and checks it before anything else in the
// request is parsed, so a wrong secret is always reported as unauthorized.
func (h *Handler) authorize(c *gin.Context, check func(string) error, fromBody string) bool {
	if err := check(adminKey(c, fromBody)); err != nil {
		h.fail(c, err)
		return false
	}
	return true
}

// bindStatusUpdate decodes the status update body. The decode error is returned
// rather than answered, so the caller can check the secret first.
func bindStatusUpdate(c *gin.Context) (UpdateStatusRequest, error) {
	var req UpdateStatusRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

// optionalAdminBody decodes an optional JSON body carrying adminKey.
func optionalAdminBody(c *gin.Context) string {
	if c.Request.ContentLength == 0 {
		return ""
	}
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.AdminKey
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
