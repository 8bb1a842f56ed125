package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/catalog"
	"github.com/babyshop/storefront/internal/events"
	"github.com/babyshop/storefront/internal/order"
)

func NewRouter(
	sessions *cart.SessionManager,
	products catalog.Repository,
	orders order.Repository,
	checkout *order.Service,
	publisher events.Publisher,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	ph := NewCatalogHandler(products)
	mux.HandleFunc("GET /api/products", ph.ListProducts)
	mux.HandleFunc("GET /api/products/{productId}", ph.GetProduct)

	ch := NewCartHandler(sessions, products)
	mux.Handle("GET /api/cart", withSession(sessions, http.HandlerFunc(ch.GetCart)))
	mux.Handle("POST /api/cart/items", withSession(sessions, http.HandlerFunc(ch.AddItem)))
	mux.Handle("PUT /api/cart/items/{productId}", withSession(sessions, http.HandlerFunc(ch.UpdateQuantity)))
	mux.Handle("DELETE /api/cart/items/{productId}", withSession(sessions, http.HandlerFunc(ch.RemoveItem)))
	mux.Handle("DELETE /api/cart", withSession(sessions, http.HandlerFunc(ch.ClearCart)))

	kh := NewCheckoutHandler(sessions, checkout, publisher, logger)
	mux.Handle("POST /api/checkout", withSession(sessions, http.HandlerFunc(kh.PlaceOrder)))

	oh := NewOrderHandler(orders)
	mux.HandleFunc("GET /api/orders/{orderId}", oh.GetOrder)

	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
