package cart

import (
	"github.com/shopspring/decimal"
)

// ProductID is the opaque key of a catalog product.
type ProductID string

// LineItem is one distinct product in the cart.
type LineItem struct {
	ID       ProductID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered sequence of line items, unique by id, kept in insertion order.
// Cart values are never mutated in place by this package; every operation returns a new Cart.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Totals are derived from the line items on demand and never stored.
type Totals struct {
	Count int             `json:"count"`
	Price decimal.Decimal `json:"price"`
}

// Empty returns a cart without line items.
func Empty() Cart {
	return Cart{Items: []LineItem{}}
}

// Len returns the number of distinct line items.
func (c Cart) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindIndex returns the position of id, or -1 when absent.
func (c Cart) FindIndex(id ProductID) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a line item with id exists.
func (c Cart) Contains(id ProductID) bool {
	return c.FindIndex(id) >= 0
}

// Item returns the line item for id.
func (c Cart) Item(id ProductID) (LineItem, bool) {
	if i := c.FindIndex(id); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// Remove filters out the line item with id. Removing an absent id returns an equal cart.
func (c Cart) Remove(id ProductID) Cart {
	out := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return Cart{Items: out}
}

// Totals folds quantity and price*quantity over the current line items.
func (c Cart) Totals() Totals {
	totals := Totals{Price: decimal.Zero}
	for _, item := range c.Items {
		totals.Count += item.Quantity
		totals.Price = totals.Price.Add(item.Subtotal())
	}
	return totals
}

func (c Cart) clone() Cart {
	out := make([]LineItem, len(c.Items))
	copy(out, c.Items)
	return Cart{Items: out}
}

func (c Cart) append(item LineItem) Cart {
	out := make([]LineItem, 0, len(c.Items)+1)
	out = append(out, c.Items...)
	out = append(out, item)
	return Cart{Items: out}
}

// validate reports the first line-item invariant the cart violates.
func (c Cart) validate() error {
	seen := make(map[ProductID]struct{}, len(c.Items))
	for i, item := range c.Items {
		if item.ID == "" {
			return invariantError(i, "empty id")
		}
		if _, dup := seen[item.ID]; dup {
			return invariantError(i, "duplicate id "+string(item.ID))
		}
		seen[item.ID] = struct{}{}
		if item.Price.IsNegative() {
			return invariantError(i, "negative price")
		}
		if item.Quantity < 1 {
			return invariantError(i, "quantity below 1")
		}
	}
	return nil
}
