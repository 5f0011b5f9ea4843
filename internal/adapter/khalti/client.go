package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// errRetryable marks failures worth another attempt.
var errRetryable = errors.New("retryable khalti failure")

// Client verifies wallet payments against the Khalti API.
type Client struct {
	baseURL    *url.URL
	secretKey  string
	attempts   int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type verifyRequest struct {
	Token  string `json:"token"`
	Amount int64  `json:"amount"`
}

// verifyResponse mirrors the fields we keep from the verify payload.
type verifyResponse struct {
	Idx    string `json:"idx"`
	Amount int64  `json:"amount"`
	State  struct {
		Name string `json:"name"`
	} `json:"state"`
}

// NewClient creates a Khalti client. attempts below one mean a single try.
func NewClient(baseURL, secretKey string, attempts int, retryDelay time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse khalti url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("khalti url must be absolute")
	}
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:    parsed,
		secretKey:  secretKey,
		attempts:   attempts,
		retryDelay: retryDelay,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Verify confirms the payment token for amount (in paisa). Transport errors and
// 5xx responses are retried; 4xx responses fail immediately.
func (c *Client) Verify(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error) {
	body, err := json.Marshal(verifyRequest{Token: token, Amount: amount})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		result, err := c.verifyOnce(ctx, body)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, errRetryable) {
			return nil, err
		}
		lastErr = err
		c.logger.Warn("khalti verify attempt failed", slog.Int("attempt", attempt), slog.Any("error", err))

		if attempt == c.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: khalti verify: %v", domainErrors.ErrDependency, ctx.Err())
		case <-time.After(c.retryDelay):
		}
	}

	return nil, fmt.Errorf("%w: khalti verify failed after %d attempts: %v", domainErrors.ErrDependency, c.attempts, lastErr)
}

func (c *Client) verifyOnce(ctx context.Context, body []byte) (*model.PaymentVerification, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/payment/verify") + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errRetryable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var data verifyResponse
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("%w: decode khalti response: %v", domainErrors.ErrDependency, err)
		}
		return &model.PaymentVerification{Idx: data.Idx, Amount: data.Amount, State: data.State.Name}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Warn("khalti rejected payment", slog.Int("status", resp.StatusCode), slog.String("body", string(payload)))
		return nil, fmt.Errorf("%w: payment rejected by khalti (%s)", domainErrors.ErrValidation, resp.Status)
	default:
		c.logger.Error("khalti request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(payload)))
		return nil, fmt.Errorf("%w: khalti error: %s", errRetryable, resp.Status)
	}
}
