package services

import (
	"github.com/google/uuid"

	"github.com/restsoft-app/restsoft-pos/models"
)

// Cart holds the in-progress line items of one order context: a table,
// the delivery form or the counter form. All operations are pure and
// synchronous; callers serialize access (the App mutex plays the role
// the browser's event loop played).
type Cart struct {
	lines   []models.CartLine
	idemKey string
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends the product with quantity 1 or, if a line for it
// already exists, bumps the quantity. A non-empty comment replaces the
// line's comment; an empty one leaves it alone.
func (c *Cart) AddItem(p models.Product, comment string) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			if comment != "" {
				c.lines[i].Comment = comment
			}
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Quantity:  1,
		Comment:   comment,
	})
}

// RemoveItem drops the whole line regardless of quantity.
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// AdjustQuantity applies delta to the line's quantity. Anything that
// lands at zero or below removes the line; a quantity of 0 is never
// kept around.
func (c *Cart) AdjustQuantity(productID uint, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		c.lines[i].Quantity += delta
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Total is recomputed from the lines on every call, never cached.
func (c *Cart) Total() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal()
	}
	return sum
}

// ItemCount sums quantities, for the badge on the cart icon.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Lines returns a copy so callers cannot bypass the mutators.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart and retires the idempotency key, so the next
// composed order gets a fresh one.
func (c *Cart) Clear() {
	c.lines = nil
	c.idemKey = ""
}

// IdempotencyKey identifies this composed order across submission
// retries. It is minted lazily and survives failed submissions; only a
// Clear (successful submission or cancellation) rotates it.
func (c *Cart) IdempotencyKey() string {
	if c.idemKey == "" {
		c.idemKey = uuid.NewString()
	}
	return c.idemKey
}
