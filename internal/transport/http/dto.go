package httpapi

import (
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// CreateOrderRequest — тело POST /orders.
// Количество не валидируется на этом слое: нулевые и отрицательные
// значения пропускаются дальше намеренно (см. DESIGN.md).
type CreateOrderRequest struct {
	CustomerID string                `json:"customer_id"`
	Products   []RequestedProductDTO `json:"products"`
}

// RequestedProductDTO — позиция запроса на оформление заказа.
type RequestedProductDTO struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

// CreateCustomerRequest — тело POST /customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateProductRequest — тело POST /products.
type CreateProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

// OrderResponse — представление заказа в ответах API.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	TotalMinor int64               `json:"total_minor"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
}

// OrderItemResponse — позиция заказа в ответах API.
type OrderItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// CustomerResponse — представление клиента в ответах API.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse — представление товара в ответах API.
type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ErrorResponse — JSON-представление ошибки API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}
	return OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		TotalMinor: order.TotalMinor(),
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}

func toCustomerResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}

func toProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		Quantity:   product.Quantity,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}
