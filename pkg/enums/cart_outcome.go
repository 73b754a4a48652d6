package enums

// CartOutcome names the effect a cart operation had on the line items.
type CartOutcome string

const (
	CartOutcomeAdded               CartOutcome = "added"
	CartOutcomeQuantityIncremented CartOutcome = "quantity_incremented"
	CartOutcomeRejected            CartOutcome = "rejected"
	CartOutcomeUpgraded            CartOutcome = "upgraded"
	CartOutcomeRemoved             CartOutcome = "removed"
	CartOutcomeUnchanged           CartOutcome = "unchanged"
	CartOutcomeCleared             CartOutcome = "cleared"
)

var validCartOutcomes = []CartOutcome{
	CartOutcomeAdded,
	CartOutcomeQuantityIncremented,
	CartOutcomeRejected,
	CartOutcomeUpgraded,
	CartOutcomeRemoved,
	CartOutcomeUnchanged,
	CartOutcomeCleared,
}

// String implements fmt.Stringer.
func (o CartOutcome) String() string {
	return string(o)
}

// IsValid reports whether the value is a known CartOutcome.
func (o CartOutcome) IsValid() bool {
	for _, candidate := range validCartOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}
