package consumer

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StreamKey != "newscout:events:articles" {
		t.Errorf("StreamKey = %q", cfg.StreamKey)
	}
	if cfg.GroupName != "newscout-indexer" {
		t.Errorf("GroupName = %q", cfg.GroupName)
	}
	if !strings.HasPrefix(cfg.ConsumerName, "newscout-indexer-") {
		t.Errorf("ConsumerName = %q, want random suffix", cfg.ConsumerName)
	}
	if cfg.Enabled {
		t.Error("consumer must default to disabled")
	}
}

func TestDefaultConfigConsumerNamesAreUnique(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	if a.ConsumerName == b.ConsumerName {
		t.Errorf("consumer names collide: %q", a.ConsumerName)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_STREAMS_URL", "redis://cache:6379")
	t.Setenv("CONSUMER_GROUP", "staging-group")
	t.Setenv("CONSUMER_NAME", "replica-1")
	t.Setenv("CONSUMER_STREAM_KEY", "staging:events")
	t.Setenv("CONSUMER_BATCH_SIZE", "25")
	t.Setenv("CONSUMER_ENABLED", "true")

	cfg := ConfigFromEnv()

	if cfg.RedisURL != "redis://cache:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.GroupName != "staging-group" || cfg.ConsumerName != "replica-1" {
		t.Errorf("group/consumer = %q/%q", cfg.GroupName, cfg.ConsumerName)
	}
	if cfg.StreamKey != "staging:events" {
		t.Errorf("StreamKey = %q", cfg.StreamKey)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d", cfg.BatchSize)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false")
	}
}
