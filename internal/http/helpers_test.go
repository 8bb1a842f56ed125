package http

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/catalog"
	"github.com/babyshop/storefront/internal/order"
)

type fakeCatalog struct {
	products map[int64]catalog.Product
	listErr  error
}

func (f *fakeCatalog) GetByID(ctx context.Context, productID int64) (*catalog.Product, error) {
	if p, ok := f.products[productID]; ok {
		return &p, nil
	}
	return nil, fmt.Errorf("product %d: %w", productID, catalog.ErrNotFound)
}

func (f *fakeCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	return f.List(ctx)
}

type fakeOrderRepo struct {
	createFunc  func(ctx context.Context, o *order.Order) error
	getByIDFunc func(ctx context.Context, orderID string) (*order.Order, error)
	created     []*order.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if f.createFunc != nil {
		if err := f.createFunc(ctx, o); err != nil {
			return err
		}
	}
	if o.ID == "" {
		o.ID = "order-test"
	}
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, nil
}

type fakePublisher struct {
	publishErr error
	published  []*order.Order
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, o)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "ProductA", Category: catalog.CategoryToys, Price: decimal.RequireFromString("9.99"), InStock: true},
		2: {ID: 2, Name: "ProductB", Category: catalog.CategoryFeeding, Price: decimal.RequireFromString("4.50"), InStock: true},
	}}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func withTestSession(r *http.Request, sid string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionIDKey, sid))
}

func sessionsWithTTL() *cart.SessionManager {
	return cart.NewSessionManager(time.Hour)
}
