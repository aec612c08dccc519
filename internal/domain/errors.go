package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCustomerNotFound возвращается, если клиент с заданным id не найден.
	ErrCustomerNotFound = errors.New("could not find any customer with the given id")
	// ErrNoProductsFound возвращается, если ни один из запрошенных товаров не найден в каталоге.
	ErrNoProductsFound = errors.New("could not find any products with the given ids")
	// ErrProductsNotFound — сигнальная ошибка для errors.Is при частично неразрешённых товарах.
	// Конкретные идентификаторы несёт ProductsNotFoundError.
	ErrProductsNotFound = errors.New("could not find requested products")
	// ErrInsufficientStock возвращается, если запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("there are one or more products with quantity unavailable")

	// ErrProductNotFound возвращается репозиторием каталога, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCustomerEmailTaken возвращается при попытке создать клиента с занятым email.
	ErrCustomerEmailTaken = errors.New("customer email is already used")
	// ErrProductNameTaken возвращается при попытке создать товар с занятым именем.
	ErrProductNameTaken = errors.New("product name is already used")
	// ErrAlreadyExists возвращается при конфликте идентификаторов на вставке.
	ErrAlreadyExists = errors.New("record already exists")

	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего email клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductQuantityInvalid = errors.New("product quantity must be non-negative")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// ProductsNotFoundError перечисляет запрошенные товары, которых нет в каталоге.
// Идентификаторы сохраняют порядок из исходного запроса.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("could not find products: %s", strings.Join(e.IDs, ", "))
}

// Is делает ошибку совместимой с errors.Is(err, ErrProductsNotFound).
func (e *ProductsNotFoundError) Is(target error) bool {
	return target == ErrProductsNotFound
}

// IsPlacementRejected проверяет, является ли ошибка отказом валидации при оформлении заказа.
func IsPlacementRejected(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrNoProductsFound) ||
		errors.Is(err, ErrProductsNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
