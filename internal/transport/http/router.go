package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// NewRouter собирает chi-маршрутизатор публичного API.
func NewRouter(handler *Handler, logger *log.Entry) http.Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders/{id}", handler.GetOrder)

	r.Post("/customers", handler.CreateCustomer)
	r.Get("/customers/{id}", handler.GetCustomer)
	r.Get("/customers/{id}/orders", handler.ListCustomerOrders)

	r.Post("/products", handler.CreateProduct)
	r.Get("/products/{id}", handler.GetProduct)

	return r
}

// requestLogger пишет access-лог через logrus вместо стандартного middleware.Logger.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithFields(log.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(started).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("http request")
		})
	}
}
