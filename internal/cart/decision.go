package cart

import "github.com/angelmondragon/kitcart/pkg/enums"

// Decision is the outcome of ResolveAdd. The concrete type is one of
// Added, QuantityIncremented, Rejected or Upgraded.
type Decision interface {
	Outcome() enums.CartOutcome
	// Result returns the cart after the decision and whether it differs from the input.
	Result() (Cart, bool)
	Text() string

	decision()
}

// Added means the candidate was inserted as a new line item.
type Added struct {
	Cart    Cart
	Message string
}

// QuantityIncremented means an existing stackable line item gained one unit.
type QuantityIncremented struct {
	Cart     Cart
	Quantity int
	Message  string
}

// Rejected means the cart is unchanged and the candidate was not added.
type Rejected struct {
	Reason string
}

// Upgraded means lower-tier line items were removed and the candidate inserted.
type Upgraded struct {
	Cart    Cart
	Removed []string
	Message string
}

func (Added) Outcome() enums.CartOutcome               { return enums.CartOutcomeAdded }
func (QuantityIncremented) Outcome() enums.CartOutcome { return enums.CartOutcomeQuantityIncremented }
func (Rejected) Outcome() enums.CartOutcome            { return enums.CartOutcomeRejected }
func (Upgraded) Outcome() enums.CartOutcome            { return enums.CartOutcomeUpgraded }

func (d Added) Result() (Cart, bool)               { return d.Cart, true }
func (d QuantityIncremented) Result() (Cart, bool) { return d.Cart, true }
func (Rejected) Result() (Cart, bool)              { return Cart{}, false }
func (d Upgraded) Result() (Cart, bool)            { return d.Cart, true }

func (d Added) Text() string               { return d.Message }
func (d QuantityIncremented) Text() string { return d.Message }
func (d Rejected) Text() string            { return d.Reason }
func (d Upgraded) Text() string            { return d.Message }

func (Added) decision()               {}
func (QuantityIncremented) decision() {}
func (Rejected) decision()            {}
func (Upgraded) decision()            {}
