package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() Cart {
	return Cart{Items: []LineItem{
		{ID: "pro-kit-notes", Name: "Pro Kit Notes", Price: decimal.RequireFromString("59.00"), Quantity: 1},
		{ID: "mock-interview-30", Name: "30-Minute Mock Interview", Price: decimal.RequireFromString("49.50"), Quantity: 3},
	}}
}

func TestCartLookup(t *testing.T) {
	c := sampleCart()

	assert.Equal(t, 1, c.FindIndex("mock-interview-30"))
	assert.Equal(t, -1, c.FindIndex("expert-kit-notes"))
	assert.True(t, c.Contains("pro-kit-notes"))

	item, ok := c.Item("mock-interview-30")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	_, ok = c.Item("missing")
	assert.False(t, ok)
}

func TestCartRemove(t *testing.T) {
	c := sampleCart()

	next := c.Remove("pro-kit-notes")
	assert.Equal(t, []ProductID{"mock-interview-30"}, ids(next))
	assert.Equal(t, 2, c.Len(), "remove must not modify the receiver")

	same := c.Remove("missing")
	assert.Equal(t, ids(c), ids(same))
}

func TestCartTotals(t *testing.T) {
	totals := sampleCart().Totals()

	assert.Equal(t, 4, totals.Count)
	assert.True(t, totals.Price.Equal(decimal.RequireFromString("207.50")), "got %s", totals.Price)

	empty := Empty().Totals()
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Price.IsZero())
}

func TestCartValidate(t *testing.T) {
	price := decimal.NewFromInt(10)
	cases := []struct {
		name  string
		items []LineItem
		ok    bool
	}{
		{"valid", sampleCart().Items, true},
		{"empty", nil, true},
		{"empty id", []LineItem{{Name: "x", Price: price, Quantity: 1}}, false},
		{"duplicate id", []LineItem{{ID: "a", Price: price, Quantity: 1}, {ID: "a", Price: price, Quantity: 2}}, false},
		{"negative price", []LineItem{{ID: "a", Price: decimal.NewFromInt(-1), Quantity: 1}}, false},
		{"zero quantity", []LineItem{{ID: "a", Price: price, Quantity: 0}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Cart{Items: tc.items}.validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	c := sampleCart()
	summary := Summarize(c)

	assert.Equal(t, 4, summary.ItemCount)
	assert.Equal(t, "207.5", summary.TotalPrice.String())
	require.Len(t, summary.Items, 2)

	summary.Items[0].Quantity = 99
	assert.Equal(t, 1, c.Items[0].Quantity, "summary must copy line items")
	assert.NotNil(t, Summarize(Cart{}).Items)
}
