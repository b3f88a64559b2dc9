package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sheet-shop/internal/logger"
	"sheet-shop/internal/middleware"
	"sheet-shop/internal/repository"
	"sheet-shop/internal/service"
)

// OrderForm is the form posted from the products page
type OrderForm struct {
	Email     string `validate:"required,email"`
	ProductID int    `validate:"required,gt=0"`
}

// PageHandler serves the HTML pages
type PageHandler struct {
	store    service.StoreService
	renderer *Renderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(store service.StoreService, renderer *Renderer) *PageHandler {
	return &PageHandler{
		store:    store,
		renderer: renderer,
	}
}

// RegisterRoutes registers all page routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/home", h.Home)
	r.Get("/about", h.About)
	r.Get("/products", h.Products)
	r.Get("/orders", h.Orders)
	r.Post("/orders", h.PlaceOrder)
}

// Home renders the landing page
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", pageData{Title: "Home", Active: "home"})
}

// About renders the about page
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about", pageData{Title: "About", Active: "about"})
}

// Products renders every product currently in the products sheet
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.renderProducts(w, r, http.StatusOK, "")
}

// Orders renders the orders placed by the email in the query string
func (h *PageHandler) Orders(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	data := pageData{Title: "Orders", Active: "orders", Email: email}

	if email != "" {
		orders, err := h.store.OrdersFor(r.Context(), email)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list orders", zap.Error(err))
			http.Error(w, "Could not load orders right now.", http.StatusBadGateway)
			return
		}
		data.Orders = orders
	}

	h.render(w, r, http.StatusOK, "orders", data)
}

// PlaceOrder handles the order form and redirects to the buyer's orders
func (h *PageHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	productID, _ := strconv.Atoi(r.PostForm.Get("product_id"))
	form := OrderForm{
		Email:     strings.TrimSpace(r.PostForm.Get("email")),
		ProductID: productID,
	}

	if err := middleware.ValidateRequest(form); err != nil {
		log.Debug("Order form validation failed", zap.Error(err))
		h.renderProducts(w, r, http.StatusBadRequest, "Please enter a valid email address and pick a product.")
		return
	}

	order, err := h.store.PlaceOrder(r.Context(), form.Email, form.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.renderProducts(w, r, http.StatusNotFound, "That product is no longer available.")
			return
		}
		log.Error("Failed to place order", zap.Error(err))
		http.Error(w, "Could not place the order right now.", http.StatusBadGateway)
		return
	}

	log.Info("Order placed",
		zap.Int("order_id", order.ID),
		zap.Int("product_id", order.ProductID),
	)
	http.Redirect(w, r, "/orders?email="+url.QueryEscape(order.UserEmail), http.StatusSeeOther)
}

func (h *PageHandler) renderProducts(w http.ResponseWriter, r *http.Request, status int, message string) {
	products, err := h.store.Catalog(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list products", zap.Error(err))
		http.Error(w, "Could not load products right now.", http.StatusBadGateway)
		return
	}

	h.render(w, r, status, "products", pageData{
		Title:    "Products",
		Active:   "products",
		Error:    message,
		Email:    strings.TrimSpace(r.FormValue("email")),
		Products: products,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		logger.FromContext(r.Context()).Error("Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
