package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func TestCustomerRepository_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	created, err := repo.Create(domain.Customer{Name: "Anna", Email: "anna@example.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if stored.Email != "anna@example.com" {
		t.Fatalf("unexpected customer: %+v", stored)
	}

	if _, err := repo.FindByEmail("anna@example.com"); err != nil {
		t.Fatalf("find by email: %v", err)
	}

	if _, err := repo.Create(domain.Customer{Name: "Clone", Email: "anna@example.com"}); !errors.Is(err, domain.ErrCustomerEmailTaken) {
		t.Fatalf("expected ErrCustomerEmailTaken, got %v", err)
	}

	if _, err := repo.Get(uuid.NewString()); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestProductRepository_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	first, err := repo.Create(domain.Product{Name: "keyboard", PriceMinor: 1000, Quantity: 5})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	second, err := repo.Create(domain.Product{Name: "mouse", PriceMinor: 250, Quantity: 2})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Результат следует порядку входных идентификаторов, пропуская ненайденные.
	found, err := repo.FindByIDs([]string{second.ID, uuid.NewString(), first.ID})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(found) != 2 || found[0].ID != second.ID || found[1].ID != first.ID {
		t.Fatalf("unexpected find result: %+v", found)
	}

	err = repo.UpdateQuantities([]domain.StockUpdate{
		{ProductID: first.ID, Quantity: 3},
		{ProductID: uuid.NewString(), Quantity: 99},
	})
	if err != nil {
		t.Fatalf("update quantities: %v", err)
	}

	stored, err := repo.Get(first.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if stored.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", stored.Quantity)
	}

	stored.Quantity = 10
	stored.PriceMinor = 1100
	if _, err := repo.Upsert(stored); err != nil {
		t.Fatalf("upsert product: %v", err)
	}
	updated, err := repo.Get(first.ID)
	if err != nil {
		t.Fatalf("get product after upsert: %v", err)
	}
	if updated.Quantity != 10 || updated.PriceMinor != 1100 {
		t.Fatalf("unexpected product after upsert: %+v", updated)
	}
}

func TestOrderRepository_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	customers := NewCustomerRepository(store)
	orders := NewOrderRepository(store)

	customer, err := customers.Create(domain.Customer{Name: "Anna", Email: "anna@example.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	created, err := orders.Create(domain.Order{
		CustomerID: customer.ID,
		Items: []domain.OrderItem{
			{ProductID: uuid.NewString(), Qty: 2, PriceMinor: 1000},
			{ProductID: uuid.NewString(), Qty: 1, PriceMinor: 250},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if len(created.Items) != 2 || created.Items[0].ID == "" {
		t.Fatalf("expected items with generated ids, got %+v", created.Items)
	}

	stored, err := orders.Get(created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(stored.Items) != 2 || stored.TotalMinor() != 2250 {
		t.Fatalf("unexpected stored order: %+v", stored)
	}

	list, err := orders.ListByCustomer(customer.ID, 0)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 order, got %d", len(list))
	}

	if _, err := orders.Get(uuid.NewString()); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOutboxRepository_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	msg, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   uuid.NewString(),
		EventType:     "order.placed",
		Payload:       []byte(`{"total_minor":1000}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pending, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != msg.ID {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 1 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := repo.MarkSent(msg.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	pending, err = repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending after mark: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending, got %d", len(pending))
	}

	if err := repo.MarkSent(uuid.NewString()); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish for unknown id, got %v", err)
	}
}
