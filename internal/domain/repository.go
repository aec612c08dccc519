package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента и возвращает сохранённую запись.
	// Возвращает ErrCustomerEmailTaken, если email уже занят.
	Create(customer Customer) (Customer, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// FindByEmail возвращает клиента по email или ErrCustomerNotFound.
	FindByEmail(email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу каталога товаров.
type ProductRepository interface {
	// Create сохраняет новый товар и возвращает сохранённую запись.
	// Возвращает ErrProductNameTaken, если имя уже занято.
	Create(product Product) (Product, error)
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// FindByIDs возвращает товары, найденные по переданным идентификаторам.
	// Ненайденные идентификаторы молча пропускаются; порядок результата
	// соответствует порядку входных идентификаторов.
	FindByIDs(ids []string) ([]Product, error)
	// UpdateQuantities применяет батч новых значений остатков.
	// Запись перетирается целиком: никакой проверки текущего остатка
	// на этом уровне нет (см. DESIGN.md про гонку списания).
	UpdateQuantities(updates []StockUpdate) error
	// Upsert создаёт или перезаписывает товар (синхронизация каталога).
	Upsert(product Product) (Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями атомарно и возвращает
	// сохранённый агрегат, включая присвоенные позиции.
	Create(order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
