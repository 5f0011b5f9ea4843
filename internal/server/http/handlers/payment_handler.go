package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// PaymentHandler verifies Khalti payments.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// VerifyKhalti handles POST /api/v1/payments/khalti/verify.
func (h *PaymentHandler) VerifyKhalti(c *gin.Context) {
	var req dto.KhaltiVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "malformed request body")
		return
	}
	result, err := h.facade.VerifyPayment(c.Request.Context(), req.Token, req.Amount)
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"payment": dto.PaymentResponse{Idx: result.Idx, Amount: result.Amount, State: result.State}})
}
