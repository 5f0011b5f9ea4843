package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/v1/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), model.OrderDraft{
		Items:         req.OrderItems,
		Shipping:      req.ShippingInfo,
		Payment:       req.PaymentInfo,
		ItemsPrice:    req.ItemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
	})
	if err != nil {
		failWith(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"order": toOrderResponse(*order)})
}

// Mine handles GET /api/v1/orders/mine.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.facade.MyOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"order": toOrderResponse(*order)})
}

// Cancel handles DELETE /api/v1/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), id); err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "order cancelled"})
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := order.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	return dto.OrderResponse{
		ID:            order.ID,
		User:          order.UserID,
		OrderItems:    items,
		ShippingInfo:  order.Shipping,
		PaymentInfo:   order.Payment,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		OrderStatus:   string(order.Status),
		PaidAt:        order.PaidAt,
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.CreatedAt,
	}
}
