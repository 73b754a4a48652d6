package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate is an item the shopper asked to add.
type Candidate struct {
	ID    ProductID
	Name  string
	Price decimal.Decimal
}

// Engine resolves add requests against the tier rules. It holds no cart state and is
// safe for concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine validates and copies rules so later changes to the caller's maps have no effect.
func NewEngine(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier rules: %w", err)
	}
	return &Engine{rules: rules.clone()}, nil
}

// Stackable reports whether re-adding id increments quantity.
func (e *Engine) Stackable(id ProductID) bool {
	return e.rules.Stackable[id]
}

// DisplayName returns the configured name for id, falling back to the supplied name.
func (e *Engine) DisplayName(id ProductID, fallback string) string {
	if name, ok := e.rules.Names[id]; ok && name != "" {
		return name
	}
	return fallback
}

// ResolveAdd decides what adding candidate does to c. Rules are tried in order and the
// first match wins: upgrade, block, re-add of an existing id, fresh add. c is not modified.
func (e *Engine) ResolveAdd(c Cart, candidate Candidate) Decision {
	if d, ok := e.upgrade(c, candidate); ok {
		return d
	}
	if d, ok := e.block(c, candidate); ok {
		return d
	}
	if i := c.FindIndex(candidate.ID); i >= 0 {
		return e.readd(c, i)
	}

	next := c.append(LineItem{
		ID:       candidate.ID,
		Name:     candidate.Name,
		Price:    candidate.Price,
		Quantity: 1,
	})
	return Added{
		Cart:    next,
		Message: fmt.Sprintf("%s added to cart!", candidate.Name),
	}
}

func (e *Engine) upgrade(c Cart, candidate Candidate) (Decision, bool) {
	lower, ok := e.rules.Upgrades[candidate.ID]
	if !ok || len(lower) == 0 {
		return nil, false
	}

	superseded := make(map[ProductID]struct{}, len(lower))
	for _, id := range lower {
		superseded[id] = struct{}{}
	}

	kept := make([]LineItem, 0, len(c.Items)+1)
	var removed []string
	for _, item := range c.Items {
		if _, drop := superseded[item.ID]; drop {
			removed = append(removed, e.DisplayName(item.ID, item.Name))
			continue
		}
		kept = append(kept, item)
	}
	if len(removed) == 0 {
		return nil, false
	}

	// The candidate itself may already be present when tables are hand-written;
	// an upgrade still leaves exactly one line item for it.
	next := Cart{Items: kept}.Remove(candidate.ID).append(LineItem{
		ID:       candidate.ID,
		Name:     candidate.Name,
		Price:    candidate.Price,
		Quantity: 1,
	})

	return Upgraded{
		Cart:    next,
		Removed: removed,
		Message: fmt.Sprintf("Auto-upgraded: Removed %s and added %s", strings.Join(removed, " + "), candidate.Name),
	}, true
}

func (e *Engine) block(c Cart, candidate Candidate) (Decision, bool) {
	for _, higher := range e.rules.Blocks[candidate.ID] {
		item, ok := c.Item(higher)
		if !ok {
			continue
		}
		return Rejected{
			Reason: fmt.Sprintf("%s already includes this content.", e.DisplayName(item.ID, item.Name)),
		}, true
	}
	return nil, false
}

func (e *Engine) readd(c Cart, index int) Decision {
	existing := c.Items[index]
	if !e.Stackable(existing.ID) {
		return Rejected{Reason: fmt.Sprintf("%s is already in your cart.", e.DisplayName(existing.ID, existing.Name))}
	}

	next := c.clone()
	next.Items[index].Quantity++
	qty := next.Items[index].Quantity
	return QuantityIncremented{
		Cart:     next,
		Quantity: qty,
		Message:  fmt.Sprintf("%s added to cart! (Quantity: %d)", existing.Name, qty),
	}
}
