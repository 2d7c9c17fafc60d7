package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is one article event read off the stream. Payload carries the
// event-specific JSON body; the remaining fields are stream provenance.
type Event struct {
	MessageID string
	EventID   string
	EventType string
	Source    string
	CreatedAt time.Time
	Payload   json.RawMessage
}

// EventHandler processes events from the stream.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads article events from a Redis Stream consumer group and
// feeds them to the handler. Handled messages are acknowledged per read
// batch; failed ones stay pending and are redelivered by the group.
type Consumer struct {
	client  *redis.Client
	config  Config
	handler EventHandler
	logger  *slog.Logger
	done    chan struct{}
}

// NewConsumer creates a consumer over config.RedisURL. A disabled config
// yields an inert consumer whose Start is a no-op.
func NewConsumer(config Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Enabled {
		return &Consumer{config: config, logger: logger}, nil
	}

	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		client:  redis.NewClient(opts),
		config:  config,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Start ensures the consumer group exists and begins the read loop.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("consumer disabled, not starting")
		return nil
	}

	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	go c.run(ctx)
	return nil
}

// Stop ends the read loop and closes the connection.
func (c *Consumer) Stop() {
	if c.done != nil {
		close(c.done)
	}
	if c.client != nil {
		c.client.Close()
	}
}

// IsEnabled reports whether the consumer is active.
func (c *Consumer) IsEnabled() bool {
	return c.config.Enabled
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled, stopping")
			return
		case <-c.done:
			c.logger.Info("consumer shutdown requested, stopping")
			return
		default:
		}

		if err := c.processBatch(ctx); err != nil {
			c.logger.Error("stream read failed", "error", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}
}

// processBatch reads up to BatchSize messages, dispatches each to the
// handler, then acknowledges the handled ones in a single XAck.
func (c *Consumer) processBatch(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	var acked []string
	for _, stream := range streams {
		for _, message := range stream.Messages {
			event := parseStreamEvent(message)

			if err := c.handler.HandleEvent(ctx, event); err != nil {
				c.logger.Error("failed to process event",
					"message_id", message.ID,
					"event_type", event.EventType,
					"error", err,
				)
				continue
			}
			acked = append(acked, message.ID)
		}
	}

	if len(acked) == 0 {
		return nil
	}
	if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, acked...).Err(); err != nil {
		c.logger.Error("failed to acknowledge batch",
			"count", len(acked),
			"error", err,
		)
	}
	return nil
}

// parseStreamEvent maps the flat stream entry onto an Event. Missing or
// malformed fields degrade to zero values rather than failing the read.
func parseStreamEvent(message redis.XMessage) Event {
	event := Event{MessageID: message.ID}

	if v, ok := message.Values["event_id"].(string); ok {
		event.EventID = v
	}
	if v, ok := message.Values["event_type"].(string); ok {
		event.EventType = v
	}
	if v, ok := message.Values["source"].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values["created_at"].(string); ok {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := message.Values["payload"].(string); ok {
		event.Payload = json.RawMessage(v)
	}

	return event
}
