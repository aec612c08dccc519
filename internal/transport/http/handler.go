package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/shop/internal/service/order"
)

const defaultListOrdersLimit = 100

// Handler обслуживает публичный JSON API магазина.
type Handler struct {
	orders    *ordersvc.Service
	customers domain.CustomerRepository
	products  domain.ProductRepository
	logger    *log.Entry
}

// NewHandler конструирует HTTP handler с зависимостями.
func NewHandler(
	orders *ordersvc.Service,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{
		orders:    orders,
		customers: customers,
		products:  products,
		logger:    logger,
	}
}

// CreateOrder обрабатывает POST /orders — единственная операция ядра.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.CustomerID == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "customer_id is required")
		return
	}

	requested := make([]domain.RequestedProduct, 0, len(req.Products))
	for _, product := range req.Products {
		requested = append(requested, domain.RequestedProduct{
			ProductID: product.ID,
			Quantity:  product.Quantity,
		})
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.CustomerID, requested)
	if err != nil {
		h.writePlacementError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder обрабатывает GET /orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			h.writeError(w, http.StatusNotFound, "order_not_found", domain.ErrOrderNotFound.Error())
			return
		}
		h.internalError(w, err, "failed to load order")
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListCustomerOrders обрабатывает GET /customers/{id}/orders.
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	limit := defaultListOrdersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	orders, err := h.orders.ListOrders(r.Context(), customerID, limit)
	if err != nil {
		h.internalError(w, err, "failed to list orders")
		return
	}

	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	h.writeJSON(w, http.StatusOK, result)
}

// CreateCustomer обрабатывает POST /customers.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	customer := domain.Customer{Name: req.Name, Email: req.Email}
	if errs := customer.ValidateInvariants(); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, "invalid_request", joinErrors(errs))
		return
	}

	created, err := h.customers.Create(customer)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerEmailTaken) {
			h.writeError(w, http.StatusConflict, "email_taken", domain.ErrCustomerEmailTaken.Error())
			return
		}
		h.internalError(w, err, "failed to create customer")
		return
	}

	h.writeJSON(w, http.StatusCreated, toCustomerResponse(created))
}

// GetCustomer обрабатывает GET /customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			h.writeError(w, http.StatusNotFound, "customer_not_found", domain.ErrCustomerNotFound.Error())
			return
		}
		h.internalError(w, err, "failed to load customer")
		return
	}

	h.writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// CreateProduct обрабатывает POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	product := domain.Product{
		Name:       req.Name,
		PriceMinor: req.PriceMinor,
		Quantity:   req.Quantity,
	}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, "invalid_request", joinErrors(errs))
		return
	}

	created, err := h.products.Create(product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNameTaken) {
			h.writeError(w, http.StatusConflict, "name_taken", domain.ErrProductNameTaken.Error())
			return
		}
		h.internalError(w, err, "failed to create product")
		return
	}

	h.writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// GetProduct обрабатывает GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, "product_not_found", domain.ErrProductNotFound.Error())
			return
		}
		h.internalError(w, err, "failed to load product")
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(product))
}

// writePlacementError переводит отказы процедуры оформления в HTTP-ответы.
// Все отказы валидации отдаются как 400: для вызывающего это единый
// класс пользовательских ошибок с человекочитаемым сообщением.
func (h *Handler) writePlacementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		h.writeError(w, http.StatusBadRequest, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrNoProductsFound):
		h.writeError(w, http.StatusBadRequest, "no_products_found", err.Error())
	case errors.Is(err, domain.ErrProductsNotFound):
		h.writeError(w, http.StatusBadRequest, "products_not_found", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		h.writeError(w, http.StatusBadRequest, "insufficient_stock", err.Error())
	default:
		h.internalError(w, err, "failed to place order")
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error, message string) {
	h.logger.WithError(err).Error(message)
	h.writeError(w, http.StatusInternalServerError, "internal_error", message)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Warn("failed to encode response")
	}
}

func joinErrors(errs []error) string {
	msg := ""
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}
