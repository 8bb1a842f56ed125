package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/cart"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// Service converts a live cart plus validated shipping details into a
// persisted, immutable order.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PlaceOrder snapshots the cart's lines and persists the order as one
// transactional unit. The cart is never mutated here: clearing it after a
// successful checkout is the caller's job, so a failed attempt leaves the
// shopper's selection intact.
func (s *Service) PlaceOrder(ctx context.Context, details ShippingDetails, c *cart.Cart) (*Order, error) {
	lines := c.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		CreatedAt: time.Now().UTC(),
		ShippingDetails: ShippingDetails{
			FullName:   strings.TrimSpace(details.FullName),
			Email:      strings.TrimSpace(details.Email),
			Address:    strings.TrimSpace(details.Address),
			City:       strings.TrimSpace(details.City),
			PostalCode: strings.TrimSpace(details.PostalCode),
		},
		Lines: make([]Line, 0, len(lines)),
	}

	// Total is computed from the same snapshot the lines come from, so the
	// header and its lines always agree even under concurrent cart updates.
	total := decimal.Zero
	for _, l := range lines {
		o.Lines = append(o.Lines, Line{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Category:    l.Product.Category,
			UnitPrice:   l.Product.Price,
			Quantity:    l.Quantity,
		})
		total = total.Add(l.Total())
	}
	o.Total = total

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return o, nil
}
