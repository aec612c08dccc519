package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

const (
	// EventTypeOrderPlaced — тип outbox-события об успешно оформленном заказе.
	EventTypeOrderPlaced = "order.placed"

	aggregateTypeOrder = "order"
)

// причины отказов для метрик.
const (
	rejectReasonCustomerNotFound  = "customer_not_found"
	rejectReasonNoProductsFound   = "no_products_found"
	rejectReasonProductsNotFound  = "products_not_found"
	rejectReasonInsufficientStock = "insufficient_stock"
)

// Service реализует процедуру оформления заказа поверх репозиториев
// клиентов, каталога и заказов.
//
// Проверка остатка и его списание не объединены в атомарную операцию:
// два одновременных заказа на один товар могут оба пройти проверку по
// устаревшему остатку. Это осознанно открытый пробел, см. DESIGN.md.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository
	metrics   *metrics.PlacementMetrics
	logger    *log.Entry
}

// NewService конструирует сервис оформления заказов.
// outbox и placementMetrics могут быть nil: публикация событий и метрики
// в этом случае отключаются.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	placementMetrics *metrics.PlacementMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		outbox:    outbox,
		metrics:   placementMetrics,
		logger:    logger,
	}
}

// placedEventPayload — полезная нагрузка события order.placed.
type placedEventPayload struct {
	OrderID    string            `json:"order_id"`
	CustomerID string            `json:"customer_id"`
	TotalMinor int64             `json:"total_minor"`
	Items      []placedEventItem `json:"items"`
	PlacedAt   time.Time         `json:"placed_at"`
}

type placedEventItem struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// PlaceOrder оформляет заказ: проверяет клиента и запрошенные товары,
// сверяет остатки, сохраняет заказ с позициями и списывает остатки.
//
// Операция не идемпотентна: повторный вызов с тем же входом создаёт
// второй заказ и списывает остаток ещё раз.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, requested []domain.RequestedProduct) (domain.Order, error) {
	started := time.Now()

	customer, err := s.customers.Get(customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, s.reject(rejectReasonCustomerNotFound, domain.ErrCustomerNotFound)
		}
		return domain.Order{}, fmt.Errorf("resolve customer: %w", err)
	}

	ids := make([]string, 0, len(requested))
	for _, req := range requested {
		ids = append(ids, req.ProductID)
	}

	resolved, err := s.products.FindByIDs(ids)
	if err != nil {
		return domain.Order{}, fmt.Errorf("resolve products: %w", err)
	}
	if len(resolved) == 0 {
		return domain.Order{}, s.reject(rejectReasonNoProductsFound, domain.ErrNoProductsFound)
	}

	byID := make(map[string]domain.Product, len(resolved))
	for _, product := range resolved {
		byID[product.ID] = product
	}

	// Проверка покрытия: каждый запрошенный id обязан разрешиться в каталоге.
	var missing []string
	for _, req := range requested {
		if _, ok := byID[req.ProductID]; !ok {
			missing = append(missing, req.ProductID)
		}
	}
	if len(missing) > 0 {
		return domain.Order{}, s.reject(rejectReasonProductsNotFound, &domain.ProductsNotFoundError{IDs: missing})
	}

	for _, req := range requested {
		if product, ok := byID[req.ProductID]; ok && req.Quantity > product.Quantity {
			return domain.Order{}, s.reject(rejectReasonInsufficientStock, domain.ErrInsufficientStock)
		}
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(requested))
	for _, req := range requested {
		// Цена копируется из каталога на момент оформления; при недостающем
		// товаре в разрешённом наборе подставляется 0 — путь недостижим после
		// проверки покрытия и сохранён ради поведенческой совместимости.
		var priceMinor int64
		if product, ok := byID[req.ProductID]; ok {
			priceMinor = product.PriceMinor
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  req.ProductID,
			Qty:        req.Quantity,
			PriceMinor: priceMinor,
			CreatedAt:  now,
		})
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Items:      items,
		CreatedAt:  now,
	}

	created, err := s.orders.Create(order)
	if err != nil {
		s.logger.WithError(err).Error("failed to persist order")
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	// Новые остатки считаются по сохранённым позициям: persistence может
	// присвоить позициям собственные идентификаторы.
	updates := make([]domain.StockUpdate, 0, len(created.Items))
	for _, item := range created.Items {
		var available int32
		if product, ok := byID[item.ProductID]; ok {
			available = product.Quantity
		}
		updates = append(updates, domain.StockUpdate{
			ProductID: item.ProductID,
			Quantity:  available - item.Qty,
		})
	}

	if err := s.products.UpdateQuantities(updates); err != nil {
		// Заказ уже сохранён, компенсации нет: остаток остаётся несписанным.
		s.logger.WithError(err).WithField("order_id", created.ID).Error("order persisted but stock update failed")
		return domain.Order{}, fmt.Errorf("update stock levels: %w", err)
	}

	s.enqueuePlacedEvent(created)

	if s.metrics != nil {
		s.metrics.RecordPlaced()
		s.metrics.RecordDuration(time.Since(started))
	}

	s.logger.WithFields(log.Fields{
		"order_id":    created.ID,
		"customer_id": created.CustomerID,
		"items":       len(created.Items),
	}).Info("order placed")

	return created, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(_ context.Context, orderID string) (domain.Order, error) {
	return s.orders.Get(orderID)
}

// ListOrders возвращает заказы клиента.
func (s *Service) ListOrders(_ context.Context, customerID string, limit int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(customerID, limit)
}

func (s *Service) reject(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordRejected(reason)
	}
	s.logger.WithField("reason", reason).Info("order placement rejected")
	return err
}

func (s *Service) enqueuePlacedEvent(order domain.Order) {
	if s.outbox == nil {
		return
	}

	eventItems := make([]placedEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, placedEventItem{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}

	payload, err := json.Marshal(placedEventPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		TotalMinor: order.TotalMinor(),
		Items:      eventItems,
		PlacedAt:   order.CreatedAt,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to encode order.placed payload")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: aggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     EventTypeOrderPlaced,
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order.placed event")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}
