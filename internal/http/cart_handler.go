package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/catalog"
)

// maxQuantity bounds a single line's quantity at the API edge; the cart
// itself only enforces the lower bound.
const maxQuantity = 99

type CartHandler struct {
	sessions *cart.SessionManager
	products catalog.Repository
}

func NewCartHandler(sessions *cart.SessionManager, products catalog.Repository) *CartHandler {
	return &CartHandler{sessions: sessions, products: products}
}

type cartLineView struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartView struct {
	Items     []cartLineView  `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func viewOf(c *cart.Cart) cartView {
	lines := c.Items()
	view := cartView{
		Items:     make([]cartLineView, 0, len(lines)),
		Subtotal:  decimal.Zero,
		ItemCount: 0,
	}
	for _, l := range lines {
		view.Items = append(view.Items, cartLineView{
			Product:   l.Product,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		})
		view.ItemCount += l.Quantity
		view.Subtotal = view.Subtotal.Add(l.Total())
	}
	return view
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.sessions.GetOrCreate(sessionID(r))
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 1 || body.Quantity > maxQuantity {
		writeError(w, http.StatusBadRequest, "quantity out of range")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.products.GetByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	c := h.sessions.GetOrCreate(sessionID(r))
	c.Add(*p, body.Quantity)

	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Quantity < 0 || body.Quantity > maxQuantity {
		writeError(w, http.StatusBadRequest, "quantity out of range")
		return
	}

	c := h.sessions.GetOrCreate(sessionID(r))
	c.SetQuantity(productID, body.Quantity)

	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	c := h.sessions.GetOrCreate(sessionID(r))
	c.Remove(productID)

	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.sessions.GetOrCreate(sessionID(r))
	c.Clear()

	writeJSON(w, http.StatusOK, viewOf(c))
}
