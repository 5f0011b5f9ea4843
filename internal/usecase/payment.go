package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PaymentUseCase verifies wallet payments for checkout.
type PaymentUseCase struct {
	gateway PaymentGateway
	logger  *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(gateway PaymentGateway, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{gateway: gateway, logger: logger}
}

// Verify confirms a Khalti token for the given amount in paisa.
func (u *PaymentUseCase) Verify(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid("token is required")
	}
	if amount <= 0 {
		return nil, invalid("amount must be positive")
	}

	result, err := u.gateway.Verify(ctx, token, amount)
	if err != nil {
		u.logger.Warn("payment verification failed", slog.Int64("amount", amount), slog.Any("error", err))
		return nil, err
	}

	u.logger.Info("payment verified", slog.String("idx", result.Idx), slog.Int64("amount", result.Amount))
	return result, nil
}
