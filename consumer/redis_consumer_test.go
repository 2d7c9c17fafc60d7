package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestParseStreamEvent(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	message := redis.XMessage{
		ID: "1700000000-0",
		Values: map[string]interface{}{
			"event_id":   "evt-1",
			"event_type": "ArticleCreated",
			"source":     "newscout-store",
			"created_at": created.Format(time.RFC3339),
			"payload":    `{"article_id":"art-1"}`,
		},
	}

	event := parseStreamEvent(message)

	if event.MessageID != "1700000000-0" {
		t.Errorf("MessageID = %q", event.MessageID)
	}
	if event.EventID != "evt-1" || event.EventType != "ArticleCreated" {
		t.Errorf("event = %+v", event)
	}
	if event.Source != "newscout-store" {
		t.Errorf("Source = %q", event.Source)
	}
	if !event.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v", event.CreatedAt)
	}

	var payload ArticleEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.ArticleID != "art-1" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestParseStreamEventToleratesMissingFields(t *testing.T) {
	event := parseStreamEvent(redis.XMessage{
		ID:     "1700000000-1",
		Values: map[string]interface{}{"event_type": "ArticleDeleted"},
	})

	if event.EventType != "ArticleDeleted" {
		t.Errorf("EventType = %q", event.EventType)
	}
	if event.EventID != "" || event.Payload != nil {
		t.Errorf("event = %+v", event)
	}
	if !event.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v", event.CreatedAt)
	}
}

func TestDisabledConsumerStartIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	consumer, err := NewConsumer(cfg, nil, slog.Default())
	if err != nil {
		t.Fatalf("NewConsumer: %v", err)
	}

	if consumer.IsEnabled() {
		t.Error("default config must be disabled")
	}
	if err := consumer.Start(context.Background()); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	consumer.Stop()
}

func TestNewConsumerRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.RedisURL = "not-a-url"

	if _, err := NewConsumer(cfg, nil, slog.Default()); err == nil {
		t.Error("expected error for malformed redis url")
	}
}
