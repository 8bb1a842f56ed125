package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/catalog"
)

// ShippingDetails is the validated checkout form. Validation (non-blank,
// lengths, email format) happens in the HTTP layer before it gets here.
type ShippingDetails struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Line is an immutable snapshot of one cart line taken when the order was
// placed. It never changes, even if the product is later edited or removed
// from the catalog.
type Line struct {
	ProductID   int64            `json:"productId"`
	ProductName string           `json:"productName"`
	Category    catalog.Category `json:"category"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Quantity    int              `json:"quantity"`
}

// Order is the aggregate root: it exclusively owns its lines, and deleting
// an order deletes all of them (ON DELETE CASCADE in the schema).
type Order struct {
	ID              string          `json:"orderId"`
	CreatedAt       time.Time       `json:"createdAt"`
	ShippingDetails                 // flattened into the JSON result
	Total           decimal.Decimal `json:"total"`
	Lines           []Line          `json:"lines"`
}
