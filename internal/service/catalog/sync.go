package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

// NewProductUpsertHandler возвращает обработчик событий каталога:
// товары из topic каталога вливаются в локальный ProductRepository.
// Остаток из события перетирает локальный, поэтому источником истины
// по количеству считается внешний каталог.
func NewProductUpsertHandler(products domain.ProductRepository, logger *log.Entry) kafka.MessageHandler {
	if logger == nil {
		logger = log.WithField("component", "catalog-sync")
	}

	return func(_ context.Context, message *sarama.ConsumerMessage) error {
		var event kafka.ProductUpsertedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return fmt.Errorf("decode catalog event: %w", err)
		}

		if event.ProductID == "" {
			return fmt.Errorf("catalog event without product_id")
		}

		product, err := products.Upsert(domain.Product{
			ID:         event.ProductID,
			Name:       event.Name,
			PriceMinor: event.PriceMinor,
			Quantity:   event.Quantity,
		})
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", event.ProductID, err)
		}

		logger.WithFields(log.Fields{
			"product_id": product.ID,
			"quantity":   product.Quantity,
		}).Debug("catalog product synced")
		return nil
	}
}
