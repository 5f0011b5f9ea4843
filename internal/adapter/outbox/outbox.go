package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// DefaultKey is the sorted set holding pending notification events.
const DefaultKey = "storefront:notifications:outbox"

// Outbox stores notification events in a Redis sorted set scored by the
// unix millisecond at which they become due.
type Outbox struct {
	client *goredis.Client
	key    string
	logger *slog.Logger
	now    func() time.Time
}

// New constructs Outbox. An empty key selects DefaultKey.
func New(client *goredis.Client, key string, logger *slog.Logger) *Outbox {
	if key == "" {
		key = DefaultKey
	}
	return &Outbox{client: client, key: key, logger: logger, now: time.Now}
}

// Notify enqueues the event for immediate delivery.
func (o *Outbox) Notify(ctx context.Context, event model.NotificationEvent) error {
	return o.Enqueue(ctx, event, 0)
}

// Enqueue stores the event to become due after delay.
func (o *Outbox) Enqueue(ctx context.Context, event model.NotificationEvent, delay time.Duration) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	score := float64(o.now().Add(delay).UnixMilli())
	if err := o.client.ZAdd(ctx, o.key, goredis.Z{Score: score, Member: string(data)}).Err(); err != nil {
		return fmt.Errorf("enqueue notification %s: %w", event.ID, err)
	}
	return nil
}

// Retry puts a failed event back with the given delay.
func (o *Outbox) Retry(ctx context.Context, event model.NotificationEvent, delay time.Duration) error {
	return o.Enqueue(ctx, event, delay)
}

// Due claims up to limit events whose due time has passed. Each member is
// removed before it is returned so concurrent relays never claim the same
// event twice. Undecodable members are dropped.
func (o *Outbox) Due(ctx context.Context, limit int) ([]model.NotificationEvent, error) {
	if limit <= 0 {
		limit = 1
	}

	members, err := o.client.ZRangeByScore(ctx, o.key, &goredis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(o.now().UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("read due notifications: %w", err)
	}

	events := make([]model.NotificationEvent, 0, len(members))
	for _, member := range members {
		removed, err := o.client.ZRem(ctx, o.key, member).Result()
		if err != nil {
			return events, fmt.Errorf("claim notification: %w", err)
		}
		if removed == 0 {
			continue
		}

		var event model.NotificationEvent
		if err := json.Unmarshal([]byte(member), &event); err != nil {
			o.logger.Error("dropping malformed notification", slog.String("member", member), slog.Any("error", err))
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// Size reports how many events are pending.
func (o *Outbox) Size(ctx context.Context) (int64, error) {
	return o.client.ZCard(ctx, o.key).Result()
}

// Ping checks connectivity to Redis.
func (o *Outbox) Ping(ctx context.Context) error {
	return o.client.Ping(ctx).Err()
}
