// Package events relays question events between service instances over
// Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/logger"
)

// DefaultChannel is the Redis channel question events travel on
const DefaultChannel = "trivia:questions"

// RedisPublisher publishes question events on a Redis channel
type RedisPublisher struct {
	redis   *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher writing to channel
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{redis: client, channel: channel}
}

// Publish implements domain.EventPublisher
func (p *RedisPublisher) Publish(ctx context.Context, event domain.QuestionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.redis.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Relay forwards events received on a Redis channel to a local publisher,
// typically the websocket hub
type Relay struct {
	redis   *redis.Client
	channel string
	target  domain.EventPublisher
	pubsub  *redis.PubSub
}

// NewRelay creates a relay from channel to target
func NewRelay(client *redis.Client, channel string, target domain.EventPublisher) *Relay {
	return &Relay{redis: client, channel: channel, target: target}
}

// Subscribe subscribes to the channel and waits for Redis to confirm it
func (r *Relay) Subscribe(ctx context.Context) error {
	pubsub := r.redis.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.pubsub = pubsub
	return nil
}

// Run forwards events until ctx is cancelled. It subscribes first unless
// Subscribe already succeeded.
func (r *Relay) Run(ctx context.Context) error {
	if r.pubsub == nil {
		if err := r.Subscribe(ctx); err != nil {
			return err
		}
	}
	defer r.pubsub.Close()

	log := logger.WithContext(ctx).WithField("channel", r.channel)
	log.Info("Relaying question events")

	messages := r.pubsub.Channel()
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := r.deliver(ctx, msg.Payload); err != nil {
				log.WithError(err).Warn("Dropped question event")
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Relay) deliver(ctx context.Context, payload string) error {
	var event domain.QuestionEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return r.target.Publish(ctx, event)
}
