package app

import (
	"testing"

	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.OpsAddr != ":9090" {
		t.Errorf("expected OpsAddr :9090, got %s", cfg.OpsAddr)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty PostgresDSN by default, got %s", cfg.PostgresDSN)
	}
	if cfg.KafkaBrokers != "" {
		t.Errorf("expected empty KafkaBrokers by default, got %s", cfg.KafkaBrokers)
	}
	if cfg.OrderEventsTopic != kafka.TopicOrderEvents {
		t.Errorf("expected OrderEventsTopic %s, got %s", kafka.TopicOrderEvents, cfg.OrderEventsTopic)
	}
	if cfg.CatalogTopic != kafka.TopicCatalogEvents {
		t.Errorf("expected CatalogTopic %s, got %s", kafka.TopicCatalogEvents, cfg.CatalogTopic)
	}
	if cfg.CatalogGroupID == "" {
		t.Error("expected CatalogGroupID to be set")
	}
	if cfg.OutboxPollInterval <= 0 {
		t.Error("expected OutboxPollInterval to be > 0")
	}
}
