package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Summary is the render-ready view of a cart.
type Summary struct {
	Items      []LineItem      `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Renderer receives the summary after every service call.
type Renderer interface {
	Render(ctx context.Context, sessionID string, summary Summary)
}

// Summarize copies the line items and recomputes totals.
func Summarize(c Cart) Summary {
	totals := c.Totals()
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Summary{
		Items:      items,
		ItemCount:  totals.Count,
		TotalPrice: totals.Price,
	}
}
