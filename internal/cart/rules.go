package cart

import (
	"fmt"

	"go.uber.org/multierr"
)

// Rules is the static tier configuration the engine is built from.
type Rules struct {
	// Upgrades maps a higher-tier id to the ordered lower-tier ids it supersedes.
	Upgrades map[ProductID][]ProductID
	// Blocks maps a lower-tier id to the ordered higher-tier ids that already include it.
	Blocks map[ProductID][]ProductID
	// Names holds display names used in notices.
	Names map[ProductID]string
	// Stackable ids accumulate quantity on re-add.
	Stackable map[ProductID]bool
}

// Validate checks that relationships point one way only and never involve stackable ids.
func (r Rules) Validate() error {
	var errs error
	for _, table := range []struct {
		name string
		rows map[ProductID][]ProductID
	}{
		{"upgrade", r.Upgrades},
		{"block", r.Blocks},
	} {
		for from, targets := range table.rows {
			if r.Stackable[from] {
				errs = multierr.Append(errs, fmt.Errorf("%s rule for stackable id %q", table.name, from))
			}
			seen := make(map[ProductID]struct{}, len(targets))
			for _, to := range targets {
				if to == from {
					errs = multierr.Append(errs, fmt.Errorf("%s rule for %q references itself", table.name, from))
				}
				if _, dup := seen[to]; dup {
					errs = multierr.Append(errs, fmt.Errorf("%s rule for %q lists %q twice", table.name, from, to))
				}
				seen[to] = struct{}{}
				if r.Stackable[to] {
					errs = multierr.Append(errs, fmt.Errorf("%s rule for %q targets stackable id %q", table.name, from, to))
				}
				if containsID(table.rows[to], from) {
					errs = multierr.Append(errs, fmt.Errorf("%s rules for %q and %q point at each other", table.name, from, to))
				}
			}
		}
	}
	return errs
}

func (r Rules) clone() Rules {
	out := Rules{
		Upgrades:  make(map[ProductID][]ProductID, len(r.Upgrades)),
		Blocks:    make(map[ProductID][]ProductID, len(r.Blocks)),
		Names:     make(map[ProductID]string, len(r.Names)),
		Stackable: make(map[ProductID]bool, len(r.Stackable)),
	}
	for k, v := range r.Upgrades {
		out.Upgrades[k] = append([]ProductID(nil), v...)
	}
	for k, v := range r.Blocks {
		out.Blocks[k] = append([]ProductID(nil), v...)
	}
	for k, v := range r.Names {
		out.Names[k] = v
	}
	for k, v := range r.Stackable {
		out.Stackable[k] = v
	}
	return out
}

func containsID(ids []ProductID, id ProductID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
