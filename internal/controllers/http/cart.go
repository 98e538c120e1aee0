package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
)

func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.deps.Catalog.List()})
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.deps.Catalog.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetCart(c *gin.Context) {
	ct, err := h.deps.Carts.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: ct})
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ct, err := h.deps.Carts.Add(c.Request.Context(), sessionID(c), cart.AddItem{
		ProductID:      req.ProductID,
		Customizations: req.Customizations,
		Quantity:       req.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: ct, Open: true})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ct, err := h.deps.Carts.SetQuantity(c.Request.Context(), sessionID(c), c.Param("itemId"), *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: ct})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	ct, err := h.deps.Carts.Remove(c.Request.Context(), sessionID(c), c.Param("itemId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: ct})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.deps.Carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
