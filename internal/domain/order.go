package domain

import "time"

// RequestedProduct — позиция из входящего запроса на оформление заказа.
// Живёт только в рамках одного вызова PlaceOrder.
type RequestedProduct struct {
	ProductID string
	Quantity  int32
}

// OrderItem представляет одну позицию заказа.
// PriceMinor фиксирует цену на момент оформления: последующие изменения
// цены в каталоге не влияют на уже созданные заказы.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID        string
	ProductID string
	// Qty — количество единиц товара.
	Qty int32
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Order агрегирует заказ клиента и его позиции.
type Order struct {
	ID         string
	CustomerID string
	Items      []OrderItem
	CreatedAt  time.Time
}

// TotalMinor возвращает сумму заказа: qty * price по всем позициям.
func (o *Order) TotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Qty) * item.PriceMinor
	}
	return total
}
