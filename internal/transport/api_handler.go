package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sheet-shop/internal/domain"
	"sheet-shop/internal/middleware"
	"sheet-shop/internal/repository"
	"sheet-shop/internal/service"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	URL         string  `json:"url" validate:"omitempty,url"`
}

// CreateOrderRequest represents the order placement payload
type CreateOrderRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	ProductID int    `json:"product_id" validate:"required,gt=0"`
}

// APIHandler handles the JSON API over products and orders
type APIHandler struct {
	store  service.StoreService
	logger *zap.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store service.StoreService, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all API routes
func (h *APIHandler) RegisterRoutes(r chi.Router, middlewares ...func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares...)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/orders", h.ListOrders)
		r.Post("/orders", h.CreateOrder)
	})
}

// ListProducts returns every product
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Catalog(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product by id
func (h *APIHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.store.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Int("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct appends a product to the catalog
func (h *APIHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.store.AddProduct(r.Context(), domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		URL:         req.URL,
	})
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// ListOrders returns the orders placed by ?email=
func (h *APIHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	orders, err := h.store.OrdersFor(r.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// CreateOrder places an order for an existing product
func (h *APIHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.store.PlaceOrder(r.Context(), req.UserEmail, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInvalidEmail):
			middleware.RespondWithError(w, http.StatusBadRequest, "user email is required")
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.Int("order_id", order.ID),
		zap.Int("product_id", order.ProductID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}
