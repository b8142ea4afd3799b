package domain

import (
	catalog "github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var (
	TaxRate               = decimal.RequireFromString("0.08")
	DeliveryFee           = decimal.RequireFromString("2.50")
	FreeDeliveryThreshold = decimal.NewFromInt(10)
)

// Option is one customization choice and what it adds to the unit price.
type Option struct {
	ID         string
	PriceDelta decimal.Decimal
}

type Customizations struct {
	Size      Option
	Milk      Option
	Sweetness Option
}

func (c *Customizations) delta() decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return c.Size.PriceDelta.Add(c.Milk.PriceDelta).Add(c.Sweetness.PriceDelta)
}

type Line struct {
	Product        catalog.Product
	Quantity       int
	Customizations *Customizations
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.Product.Price.Add(l.Customizations.delta())
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
}

// DisplayTotals is Totals rounded for presentation.
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Delivery string `json:"delivery"`
	Total    string `json:"total"`
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Delivery: t.Delivery.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

// Cart keeps one line per product id, in insertion order. Every line has a
// quantity of at least one.
type Cart struct {
	lines []Line
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) index(productID int) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges into an existing line for the same product or appends a new
// one. It reports whether a new line was created. Non-positive quantities are
// ignored.
func (c *Cart) AddItem(p catalog.Product, quantity int, custom *Customizations) bool {
	if quantity <= 0 {
		return false
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		if custom != nil {
			c.lines[i].Customizations = custom
		}
		return false
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity, Customizations: custom})
	return true
}

// SetQuantity removes the line when quantity is zero. Negative quantities and
// unknown products are no-ops.
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity == 0 {
		c.RemoveItem(productID)
		return
	}
	if quantity < 0 {
		return
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// RemoveItem reports whether a line was removed.
func (c *Cart) RemoveItem(productID int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Total())
	}

	tax := subtotal.Mul(TaxRate)
	delivery := DeliveryFee
	if subtotal.GreaterThan(FreeDeliveryThreshold) {
		delivery = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Delivery: delivery,
		Total:    subtotal.Add(tax).Add(delivery),
	}
}
