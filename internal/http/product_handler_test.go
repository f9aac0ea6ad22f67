package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogServiceMock struct {
	products []domain.Product
	created  *domain.Product
	err      error
}

func (c CatalogServiceMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c CatalogServiceMock) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.created, nil
}

func (c CatalogServiceMock) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return c.err
}

func TestListProducts_Success(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{
		products: []domain.Product{
			{ID: primitive.NewObjectID(), ProductID: "PROD001", Name: "Laptop Pro", Price: 1299.99, Quantity: 10},
			{ID: primitive.NewObjectID(), ProductID: "PROD002", Name: "Smartphone X", Price: 799.99, Quantity: 15},
		},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/products", nil)

	handler.ListProducts(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 products, got %d", len(response))
	}
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{products: []domain.Product{}})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/products", nil)

	handler.ListProducts(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if body := recorder.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestCreateProduct_Success(t *testing.T) {
	created := &domain.Product{ID: primitive.NewObjectID(), ProductID: "PROD100", Name: "USB-C Hub", Price: 59.99, Quantity: 30}
	handler := NewProductHandler(CatalogServiceMock{created: created})

	body, _ := json.Marshal(CreateProductRequestDTO{
		ProductID:   "PROD100",
		Name:        "USB-C Hub",
		Description: "7-in-1 hub with HDMI and card reader",
		Price:       59.99,
		Quantity:    30,
	})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))

	handler.CreateProduct(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
}

func TestCreateProduct_DuplicateLabel(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{err: &service.ValidationError{Message: "product id already exists"}})

	body, _ := json.Marshal(CreateProductRequestDTO{ProductID: "PROD100", Name: "USB-C Hub", Price: 59.99})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))

	handler.CreateProduct(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestDeleteProduct_Success(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{})

	id := primitive.NewObjectID().Hex()
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("DELETE", "/api/products/"+id, nil), "id", id)

	handler.DeleteProduct(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}

func TestDeleteProduct_NotFound(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{err: &service.NotFoundError{Resource: "product"}})

	id := primitive.NewObjectID().Hex()
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("DELETE", "/api/products/"+id, nil), "id", id)

	handler.DeleteProduct(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	handler := NewProductHandler(CatalogServiceMock{})

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("DELETE", "/api/products/xyz", nil), "id", "xyz")

	handler.DeleteProduct(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
