package khalti

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("://bad-url", "key", 3, 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewClient("/relative", "key", 3, 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	c, err := NewClient("https://khalti.com/api/v2", "key", 0, 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.attempts != 1 {
		t.Fatalf("expected attempts normalized to 1, got %d", c.attempts)
	}
}

func TestVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v2/payment/verify/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Key test_secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var body verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Token != "tok" || body.Amount != 1000 {
			t.Errorf("unexpected body %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idx":"8xmeJnNXfoVjCvGcZiiGe7","amount":1000,"state":{"idx":"s1","name":"Completed"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/api/v2", "test_secret", 3, time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	result, err := client.Verify(context.Background(), "tok", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Idx != "8xmeJnNXfoVjCvGcZiiGe7" || result.Amount != 1000 || result.State != "Completed" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestVerifyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"idx":"abc","amount":500,"state":{"name":"Completed"}}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "k", 3, time.Millisecond, testLogger())
	result, err := client.Verify(context.Background(), "tok", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 || result.Idx != "abc" {
		t.Fatalf("expected success on third attempt, calls=%d result=%+v", calls.Load(), result)
	}
}

func TestVerifyExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "k", 3, time.Millisecond, testLogger())
	_, err := client.Verify(context.Background(), "tok", 500)
	if !errors.Is(err, domainErrors.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestVerifyClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Invalid token.","error_key":"validation_error"}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "k", 3, time.Millisecond, testLogger())
	_, err := client.Verify(context.Background(), "bad", 500)
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestVerifyTransportErrorsAreRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, _ := NewClient(url, "k", 2, time.Millisecond, testLogger())
	if _, err := client.Verify(context.Background(), "tok", 500); !errors.Is(err, domainErrors.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestVerifyMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "k", 3, time.Millisecond, testLogger())
	if _, err := client.Verify(context.Background(), "tok", 500); !errors.Is(err, domainErrors.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestVerifyStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "k", 3, time.Hour, testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if _, err := client.Verify(ctx, "tok", 500); !errors.Is(err, domainErrors.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("verify did not honour context cancellation")
	}
}
