package app

import (
	"time"

	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес публичного JSON API.
	HTTPAddr string
	// OpsAddr — адрес служебного сервера (/metrics, /healthz, /livez).
	OpsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустое значение
	// означает in-memory репозитории для локальной разработки.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую; пустое значение
	// отключает публикацию событий и синхронизацию каталога.
	KafkaBrokers string
	// OrderEventsTopic — topic для событий заказов из outbox.
	OrderEventsTopic string
	// CatalogTopic — topic входящих событий каталога.
	CatalogTopic string
	// CatalogGroupID — consumer group для синхронизации каталога.
	CatalogGroupID string
	// OutboxPollInterval — период опроса transactional outbox.
	OutboxPollInterval time.Duration
}

// DefaultConfig возвращает базовые адреса и топики.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":8080",
		OpsAddr:            ":9090",
		OrderEventsTopic:   kafka.TopicOrderEvents,
		CatalogTopic:       kafka.TopicCatalogEvents,
		CatalogGroupID:     "shop-catalog-sync",
		OutboxPollInterval: time.Second,
	}
}
