package http

import (
	"net/http"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter wires every endpoint. Cart, order and checkout routes sit
// behind the bearer-token middleware; the catalog read and auth routes
// are public.
func NewRouter(
	tokens *auth.Tokens,
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	cartHandler *CartHandler,
	ordersHandler *OrdersHandler,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/add", cartHandler.AddItem)
				r.Put("/{productId}", cartHandler.UpdateQuantity)
				r.Delete("/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/place", ordersHandler.PlaceOrder)
				r.Get("/", ordersHandler.ListOrders)
				r.Get("/session/{sessionId}", ordersHandler.GetOrderBySession)
			})

			r.Post("/checkout/create-session", ordersHandler.CreateCheckoutSession)
		})
	})

	return otelhttp.NewHandler(r, "storefront-api")
}
