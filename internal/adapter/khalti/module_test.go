package khalti

import (
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewGatewayUsesConfig(t *testing.T) {
	cfg := &config.Config{
		KhaltiBaseURL:     "https://khalti.com/api/v2",
		KhaltiSecretKey:   "live_secret",
		PaymentAttempts:   3,
		PaymentRetryDelay: time.Second,
	}
	gateway, err := newGateway(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, ok := gateway.(*Client)
	if !ok {
		t.Fatalf("unexpected gateway type %T", gateway)
	}
	if client.secretKey != "live_secret" || client.attempts != 3 || client.retryDelay != time.Second {
		t.Fatalf("config not applied: %+v", client)
	}
}

func TestNewGatewayRejectsBadURL(t *testing.T) {
	if _, err := newGateway(clientParams{Config: &config.Config{KhaltiBaseURL: "relative"}, Logger: testLogger()}); err == nil {
		t.Fatal("expected error")
	}
}
