package realtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/platform/resilience"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

const DefaultChannel = "gameday:events"

// RedisRelay publishes game events on a Redis channel so every replica's hub
// sees them. When Redis is failing, events go straight to the local hub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	local   *Hub
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewRedisRelay(client *redis.Client, channel string, local *Hub, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *RedisRelay {
	if logger == nil {
		logger = logging.Default()
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}

	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("redis relay circuit changed", "from", string(from), "to", string(to), "channel", channel)
	})

	return &RedisRelay{
		client:  client,
		channel: channel,
		local:   local,
		breaker: breaker,
		logger:  logger,
	}
}

func (r *RedisRelay) PublishGameEvent(ctx context.Context, event usecase.GameEvent) error {
	payload, err := sonic.MarshalString(event)
	if err != nil {
		return fmt.Errorf("encode game event: %w", err)
	}

	err = r.breaker.Do(func() error {
		return r.client.Publish(ctx, r.channel, payload).Err()
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		r.logger.DebugContext(ctx, "redis relay circuit open, delivering locally",
			"game_id", event.GameID,
			"event", event.Type,
		)
	default:
		r.logger.WarnContext(ctx, "redis publish failed, delivering locally",
			"game_id", event.GameID,
			"event", event.Type,
			"error", err,
		)
	}
	return r.local.PublishGameEvent(ctx, event)
}

// Run forwards channel messages to the local hub until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		_ = sub.Close()
	}()

	r.logger.Info("redis relay subscribed", "channel", r.channel)
	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event usecase.GameEvent
			if err := sonic.UnmarshalString(msg.Payload, &event); err != nil {
				r.logger.Warn("drop malformed relay message", "error", err)
				continue
			}
			_ = r.local.PublishGameEvent(ctx, event)
		}
	}
}

func (r *RedisRelay) State() resilience.CircuitState {
	return r.breaker.State()
}
