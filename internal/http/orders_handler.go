package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, shippingAddress string) (*domain.OrderView, error)
	CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, items []domain.CheckoutItem, shipping domain.ShippingDetails) (*service.CheckoutSession, error)
	GetOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	GetOrderBySession(ctx context.Context, userID primitive.ObjectID, sessionID string) (*domain.OrderView, error)
}

type OrdersHandler struct {
	orders OrderService
}

func NewOrdersHandler(orders OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type PlaceOrderRequestDTO struct {
	ShippingAddress string `json:"shippingAddress"`
}

type CheckoutRequestDTO struct {
	Items           []domain.CheckoutItem  `json:"items"`
	ShippingDetails domain.ShippingDetails `json:"shippingDetails"`
}

// POST /api/orders/place
func (h *OrdersHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), userID, req.ShippingAddress)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// POST /api/checkout/create-session
func (h *OrdersHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.orders.CreateCheckoutSession(r.Context(), userID, req.Items, req.ShippingDetails)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GET /api/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.GetOrders(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GET /api/orders/session/{sessionId}
func (h *OrdersHandler) GetOrderBySession(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session id is required")
		return
	}

	order, err := h.orders.GetOrderBySession(r.Context(), userID, sessionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
