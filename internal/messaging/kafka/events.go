package kafka

import "time"

// Topics для Kafka.
const (
	// TopicOrderEvents — события заказов, публикуемые из outbox.
	TopicOrderEvents = "shop.order.events"
	// TopicCatalogEvents — входящие события каталога товаров.
	TopicCatalogEvents = "shop.catalog.events"
	// TopicDeadLetterQueue — Dead Letter Queue для сообщений, которые не удалось опубликовать.
	TopicDeadLetterQueue = "shop.dlq"
)

// EventType определяет тип события каталога.
type EventType string

const (
	// EventTypeProductUpserted — товар создан или обновлён во внешнем каталоге.
	EventTypeProductUpserted EventType = "catalog.product_upserted"
)

// ProductUpsertedEvent — событие синхронизации товара из внешнего каталога.
type ProductUpsertedEvent struct {
	EventType  EventType `json:"event_type"`
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
}
