package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sheet-shop/internal/domain"
	"sheet-shop/internal/repository"
)

var (
	ErrInvalidEmail = errors.New("user email is required")
)

// StoreService defines the shop operations used by the web layer
type StoreService interface {
	Catalog(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int) (*domain.Product, error)
	AddProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	PlaceOrder(ctx context.Context, email string, productID int) (domain.Order, error)
	OrdersFor(ctx context.Context, email string) ([]domain.Order, error)
}

type storeService struct {
	repo repository.SpreadsheetRepository
}

// NewStoreService creates a new instance of StoreService
func NewStoreService(repo repository.SpreadsheetRepository) StoreService {
	return &storeService{repo: repo}
}

func (s *storeService) Catalog(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *storeService) Product(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindProduct(ctx, id)
}

func (s *storeService) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to add product: %w", err)
	}
	return created, nil
}

// PlaceOrder records a purchase, copying the product's current name and price
// onto the order.
func (s *storeService) PlaceOrder(ctx context.Context, email string, productID int) (domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Order{}, ErrInvalidEmail
	}

	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.CreateOrder(ctx, domain.Order{
		UserEmail:    email,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to place order: %w", err)
	}
	return order, nil
}

func (s *storeService) OrdersFor(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := s.repo.ListOrdersForUser(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
