package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий каталога для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, проверяя уникальность имени.
func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == product.Name {
			return domain.Product{}, domain.ErrProductNameTaken
		}
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	} else if _, exists := r.items[product.ID]; exists {
		return domain.Product{}, domain.ErrAlreadyExists
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	r.items[product.ID] = product
	return product, nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// FindByIDs возвращает найденные товары в порядке входных идентификаторов.
// Ненайденные и повторные идентификаторы молча пропускаются.
func (r *productRepositoryInMemory) FindByIDs(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}

	return result, nil
}

// UpdateQuantities применяет батч новых значений остатков.
// Неизвестные товары в батче пропускаются; остаток перетирается без
// проверки текущего значения.
func (r *productRepositoryInMemory) UpdateQuantities(updates []domain.StockUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, update := range updates {
		product, ok := r.items[update.ProductID]
		if !ok {
			continue
		}
		product.Quantity = update.Quantity
		product.UpdatedAt = now
		r.items[update.ProductID] = product
	}
	return nil
}

// Upsert создаёт или перезаписывает товар (синхронизация каталога).
func (r *productRepositoryInMemory) Upsert(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if existing, ok := r.items[product.ID]; ok {
		product.CreatedAt = existing.CreatedAt
	} else if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	r.items[product.ID] = product
	return product, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
