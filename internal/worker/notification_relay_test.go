package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, facade *testhelpers.RelayFacadeStub, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		facade.Lock()
		done := cond()
		facade.Unlock()
		if done {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for relay")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewNotificationRelayDefaults(t *testing.T) {
	relay := NewNotificationRelay(&testhelpers.RelayFacadeStub{}, time.Second, 0, 0, 0, time.Second, testLogger())
	if relay.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", relay.batchSize)
	}
	if relay.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", relay.workers)
	}
	if relay.maxAttempts != 1 {
		t.Fatalf("expected max attempts default to 1, got %d", relay.maxAttempts)
	}
}

func TestNotificationRelayPublishesDueEvents(t *testing.T) {
	facade := &testhelpers.RelayFacadeStub{Batches: [][]model.NotificationEvent{
		{{ID: "a", Kind: model.NotificationOrderConfirmation}, {ID: "b", Kind: model.NotificationOrderStatus}},
	}}
	relay := NewNotificationRelay(facade, 5*time.Millisecond, 4, 2, 3, time.Second, testLogger())

	relay.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Published) == 2 })
	relay.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Retries) != 0 {
		t.Fatalf("expected no retries, got %+v", facade.Retries)
	}
}

func TestNotificationRelayRetriesWithBackoff(t *testing.T) {
	facade := &testhelpers.RelayFacadeStub{
		Batches: [][]model.NotificationEvent{{{ID: "a", Attempts: 1}}},
		PublishFn: func(context.Context, model.NotificationEvent) error {
			return errors.New("broker down")
		},
	}
	relay := NewNotificationRelay(facade, 5*time.Millisecond, 1, 1, 5, 2*time.Second, testLogger())

	relay.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Retries) == 1 })
	relay.Stop()

	facade.Lock()
	defer facade.Unlock()
	retry := facade.Retries[0]
	if retry.Event.Attempts != 2 {
		t.Fatalf("expected attempts to be incremented to 2, got %d", retry.Event.Attempts)
	}
	if retry.Delay != 4*time.Second {
		t.Fatalf("expected delay 4s, got %v", retry.Delay)
	}
}

func TestNotificationRelayDeadLettersAfterMaxAttempts(t *testing.T) {
	var publishes atomic.Int32
	facade := &testhelpers.RelayFacadeStub{
		Batches: [][]model.NotificationEvent{{{ID: "a", Attempts: 2}}},
		PublishFn: func(context.Context, model.NotificationEvent) error {
			publishes.Add(1)
			return errors.New("broker down")
		},
	}
	relay := NewNotificationRelay(facade, 5*time.Millisecond, 1, 1, 3, time.Second, testLogger())

	relay.Start(context.Background())
	deadline := time.After(time.Second)
	for publishes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for publish attempt")
		case <-time.After(5 * time.Millisecond):
		}
	}
	relay.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Retries) != 0 {
		t.Fatalf("expected event to be dropped, got retries %+v", facade.Retries)
	}
}

func TestNotificationRelaySurvivesFetchErrors(t *testing.T) {
	var calls atomic.Int32
	facade := &testhelpers.RelayFacadeStub{}
	facade.DueFn = func(context.Context, int) ([]model.NotificationEvent, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("redis unavailable")
		}
		if calls.Load() == 2 {
			return []model.NotificationEvent{{ID: "late"}}, nil
		}
		return nil, nil
	}
	relay := NewNotificationRelay(facade, 5*time.Millisecond, 1, 1, 3, time.Second, testLogger())

	relay.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Published) == 1 })
	relay.Stop()
}

func TestNotificationRelayDispatchesEventsClaimedBeforeFetchError(t *testing.T) {
	var calls atomic.Int32
	facade := &testhelpers.RelayFacadeStub{}
	facade.DueFn = func(context.Context, int) ([]model.NotificationEvent, error) {
		if calls.Add(1) == 1 {
			return []model.NotificationEvent{{ID: "claimed"}}, errors.New("claim notification: redis timeout")
		}
		return nil, nil
	}
	relay := NewNotificationRelay(facade, 5*time.Millisecond, 2, 1, 3, time.Second, testLogger())

	relay.Start(context.Background())
	waitFor(t, facade, func() bool { return len(facade.Published) == 1 })
	relay.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Published[0].ID != "claimed" {
		t.Fatalf("unexpected published event %+v", facade.Published[0])
	}
}

func TestNotificationRelayStopReturnsClaimedEventsToOutbox(t *testing.T) {
	for run := 0; run < 10; run++ {
		batch := []model.NotificationEvent{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
		started := make(chan struct{})
		var once sync.Once
		facade := &testhelpers.RelayFacadeStub{
			Batches: [][]model.NotificationEvent{batch},
			PublishFn: func(ctx context.Context, _ model.NotificationEvent) error {
				once.Do(func() { close(started) })
				<-ctx.Done()
				return ctx.Err()
			},
		}
		relay := NewNotificationRelay(facade, 5*time.Millisecond, len(batch), 1, 3, time.Second, testLogger())

		relay.Start(context.Background())
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for publish")
		}
		relay.Stop()

		facade.Lock()
		seen := make(map[string]int)
		for _, retry := range facade.Retries {
			seen[retry.Event.ID]++
			if retry.Delay != 0 || retry.Event.Attempts != 0 {
				t.Fatalf("run %d: shutdown should requeue immediately without an attempt, got %+v", run, retry)
			}
		}
		published := len(facade.Published)
		facade.Unlock()

		if published != 0 {
			t.Fatalf("run %d: expected nothing published, got %d", run, published)
		}
		for _, event := range batch {
			if seen[event.ID] != 1 {
				t.Fatalf("run %d: event %s requeued %d times, want 1 (retries %v)", run, event.ID, seen[event.ID], seen)
			}
		}
	}
}

func TestNotificationRelayStopIsIdempotent(t *testing.T) {
	relay := NewNotificationRelay(&testhelpers.RelayFacadeStub{}, time.Millisecond, 1, 2, 1, time.Second, testLogger())
	relay.Start(context.Background())
	relay.Stop()
	relay.Stop()
}
