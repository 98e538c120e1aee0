package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/services"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.deps.Orders.Create(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateOrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		PaymentStatus: order.PaymentStatus,
		Total:         order.Total,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.deps.Orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.deps.Orders.List(c.Request.Context(), adminKey(c, ""))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	req, bindErr := bindStatusUpdate(c)
	key := adminKey(c, req.AdminKey)
	if !h.authorize(c, h.deps.Orders.Authorize, key) {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if bindErr != nil {
		badRequest(c, bindErr)
		return
	}

	err := h.deps.Orders.UpdateStatus(c.Request.Context(), key, id, domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	key := adminKey(c, optionalAdminBody(c))
	if !h.authorize(c, h.deps.Orders.Authorize, key) {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.deps.Orders.Delete(c.Request.Context(), key, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
