package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/babyshop/storefront/internal/catalog"
)

// Line is one product entry in a cart. Product is a copy taken when the
// line was added, so later catalog edits do not change the line.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Total returns unit price times quantity for this line.
func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates a session's pending selections. One cart belongs to
// exactly one session; all operations take the cart's own lock so two
// requests racing on the same session cannot corrupt the line map.
type Cart struct {
	mu    sync.Mutex
	lines map[int64]*Line
	order []int64
}

func New() *Cart {
	return &Cart{lines: make(map[int64]*Line)}
}

// Add merges quantity into an existing line or appends a new one,
// preserving insertion order. Quantity is floored at 1; rejecting
// out-of-range input is the caller's job.
func (c *Cart) Add(product catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lines[product.ID]; ok {
		existing.Quantity += quantity
		return
	}
	c.lines[product.ID] = &Line{Product: product, Quantity: quantity}
	c.order = append(c.order, product.ID)
}

// SetQuantity replaces a line's quantity. Zero or negative removes the
// line. Unknown product ids are a no-op; SetQuantity never creates a line.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity = quantity
	}
}

// Remove drops a line; removing an absent line is a no-op.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int64) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]*Line)
	c.order = nil
}

// Items returns a copy of the lines in insertion order. The copy is
// taken under the lock, so a caller sees one consistent cart state.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.lines[id])
	}
	return items
}

// ItemCount returns the sum of all line quantities.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of line totals at 2-decimal precision.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		subtotal = subtotal.Add(line.Total())
	}
	return subtotal
}
