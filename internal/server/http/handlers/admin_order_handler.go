package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// AdminOrderHandler serves the fulfillment dashboard.
type AdminOrderHandler struct {
	facade AdminOrderFacade
}

// NewAdminOrderHandler constructs AdminOrderHandler.
func NewAdminOrderHandler(facade AdminOrderFacade) *AdminOrderHandler {
	return &AdminOrderHandler{facade: facade}
}

// List handles GET /api/v1/orders/admin.
func (h *AdminOrderHandler) List(c *gin.Context) {
	orders, total, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": toOrderResponses(orders), "totalAmount": total})
}

// UpdateStatus handles PUT /api/v1/orders/admin/:id.
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.facade.UpdateOrderStatus(c.Request.Context(), id, req.OrderStatus); err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "order status updated"})
}

// Delete handles DELETE /api/v1/orders/admin/:id.
func (h *AdminOrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "order deleted"})
}
