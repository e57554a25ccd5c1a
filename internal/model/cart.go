package model

import "github.com/shopspring/decimal"

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds at most one item per product id, in insertion order.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

func (c *Cart) index(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add inserts product or increments the existing line by qty.
func (c *Cart) Add(p Product, qty int) {
	if i := c.index(p.ID); i >= 0 {
		c.Items[i].Quantity += qty
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: qty})
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity updates an existing line in place. Absent products are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	if i := c.index(productID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) Contains(productID string) bool { return c.index(productID) >= 0 }

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// OrderItems snapshots the cart lines for an order.
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, OrderItem{Product: it.Product.Snapshot(), Quantity: it.Quantity})
	}
	return items
}
