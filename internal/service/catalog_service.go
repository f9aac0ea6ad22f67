package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService is the admin surface for products. The cart and order
// services only ever read products and adjust their stock.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.ProductID) == "" || strings.TrimSpace(product.Name) == "" {
		return nil, &ValidationError{Message: "productId and name are required"}
	}
	if product.Price < 0 {
		return nil, &ValidationError{Message: "price must not be negative"}
	}
	if product.Quantity < 0 {
		return nil, &ValidationError{Message: "quantity must not be negative"}
	}

	if err := s.products.Insert(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateLabel) {
			return nil, &ValidationError{Message: "product id already exists"}
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return &NotFoundError{Resource: "product"}
	}
	return err
}
