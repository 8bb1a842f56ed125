package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/events"
	"github.com/babyshop/storefront/internal/order"
)

type CheckoutHandler struct {
	sessions  *cart.SessionManager
	checkout  *order.Service
	publisher events.Publisher
	logger    *log.Logger
}

func NewCheckoutHandler(sessions *cart.SessionManager, checkout *order.Service, publisher events.Publisher, logger *log.Logger) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkout: checkout, publisher: publisher, logger: logger}
}

// checkoutForm mirrors the storefront's checkout page. Field limits match
// what the form enforces client-side.
type checkoutForm struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

func (f checkoutForm) validate() []string {
	var problems []string

	check := func(field, value string, max int) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, field+" is required")
			return
		}
		if len(value) > max {
			problems = append(problems, field+" is too long")
		}
	}

	check("fullName", f.FullName, 200)
	check("email", f.Email, 320)
	check("address", f.Address, 2000)
	check("city", f.City, 120)
	check("postalCode", f.PostalCode, 40)

	if email := strings.TrimSpace(f.Email); email != "" {
		at := strings.Index(email, "@")
		if at < 1 || at == len(email)-1 {
			problems = append(problems, "email is invalid")
		}
	}

	return problems
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form checkoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if problems := form.validate(); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": problems})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c := h.sessions.GetOrCreate(sessionID(r))

	o, err := h.checkout.PlaceOrder(ctx, order.ShippingDetails{
		FullName:   form.FullName,
		Email:      form.Email,
		Address:    form.Address,
		City:       form.City,
		PostalCode: form.PostalCode,
	}, c)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeError(w, http.StatusConflict, "cart is empty")
			return
		}
		// nothing was persisted; the cart is untouched so the shopper can retry
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	// The order is committed; only now may the cart be cleared.
	c.Clear()

	if err := h.publisher.PublishOrderPlaced(ctx, o); err != nil {
		// the order exists regardless, so publish failures are logged, not surfaced
		h.logger.Printf("publish OrderPlaced for %s: %v", o.ID, err)
	}

	writeJSON(w, http.StatusCreated, o)
}
