package cart

import (
	"reflect"
	"strings"
	"testing"

	"github.com/angelmondragon/kitcart/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestResolveAddFreshAdd(t *testing.T) {
	engine := newTestEngine(t)

	d := engine.ResolveAdd(Empty(), candidateFor(t, "pro-kit-questions"))
	added, ok := d.(Added)
	if !ok {
		t.Fatalf("expected Added, got %T", d)
	}
	if added.Message != "Pro Kit Questions added to cart!" {
		t.Fatalf("unexpected message %q", added.Message)
	}
	if len(added.Cart.Items) != 1 || added.Cart.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart %+v", added.Cart)
	}
}

func TestResolveAddNonStackableReaddIsRejected(t *testing.T) {
	engine := newTestEngine(t)
	c := mustApply(t, engine, Empty(), "foundation-kit-notes")
	before := c.Totals()

	d := engine.ResolveAdd(c, candidateFor(t, "foundation-kit-notes"))
	rejected, ok := d.(Rejected)
	if !ok {
		t.Fatalf("expected Rejected, got %T", d)
	}
	if rejected.Reason != "Foundation Kit Notes is already in your cart." {
		t.Fatalf("unexpected reason %q", rejected.Reason)
	}
	if _, changed := d.Result(); changed {
		t.Fatal("rejected decision must not report a changed cart")
	}
	if c.Totals().Count != before.Count || c.Len() != 1 {
		t.Fatalf("cart changed after rejected add: %+v", c)
	}
}

func TestResolveAddStackableAccumulates(t *testing.T) {
	engine := newTestEngine(t)
	c := Empty()
	const n = 4
	for i := 0; i < n; i++ {
		c = mustApply(t, engine, c, "mock-interview-30")
	}

	if c.Len() != 1 {
		t.Fatalf("expected one line item, got %d", c.Len())
	}
	if c.Items[0].Quantity != n {
		t.Fatalf("expected quantity %d, got %d", n, c.Items[0].Quantity)
	}
	want := decimal.RequireFromString("49.00").Mul(decimal.NewFromInt(n))
	if !c.Totals().Price.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, c.Totals().Price)
	}
}

func TestResolveAddStackableMessageAndPriceFreeze(t *testing.T) {
	engine := newTestEngine(t)
	c := mustApply(t, engine, Empty(), "mock-interview-60")

	d := engine.ResolveAdd(c, Candidate{ID: "mock-interview-60", Name: "Renamed", Price: decimal.NewFromInt(1)})
	inc, ok := d.(QuantityIncremented)
	if !ok {
		t.Fatalf("expected QuantityIncremented, got %T", d)
	}
	if inc.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", inc.Quantity)
	}
	if inc.Message != "60-Minute Mock Interview added to cart! (Quantity: 2)" {
		t.Fatalf("unexpected message %q", inc.Message)
	}
	item := inc.Cart.Items[0]
	if item.Name != "60-Minute Mock Interview" || !item.Price.Equal(decimal.RequireFromString("89")) {
		t.Fatalf("re-add must not update name or price, got %+v", item)
	}
}

func TestResolveAddUpgradeRemovesRegisteredSet(t *testing.T) {
	engine := newTestEngine(t)
	c := Empty()
	c = mustApply(t, engine, c, "pro-kit-notes")
	c = mustApply(t, engine, c, "mock-interview-30")
	// foundation after pro is only reachable through hand-built carts.
	c = c.append(LineItem{ID: "foundation-kit-notes", Name: "Foundation Kit Notes", Price: decimal.NewFromInt(29), Quantity: 1})

	d := engine.ResolveAdd(c, candidateFor(t, "expert-kit-notes"))
	up, ok := d.(Upgraded)
	if !ok {
		t.Fatalf("expected Upgraded, got %T", d)
	}
	if !reflect.DeepEqual(up.Removed, []string{"Pro Kit Notes", "Foundation Kit Notes"}) {
		t.Fatalf("removed names should follow cart order, got %v", up.Removed)
	}
	if up.Message != "Auto-upgraded: Removed Pro Kit Notes + Foundation Kit Notes and added Expert Kit Notes" {
		t.Fatalf("unexpected message %q", up.Message)
	}
	if got := ids(up.Cart); !reflect.DeepEqual(got, []ProductID{"mock-interview-30", "expert-kit-notes"}) {
		t.Fatalf("unexpected cart ids %v", got)
	}
	expert, _ := up.Cart.Item("expert-kit-notes")
	if expert.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", expert.Quantity)
	}
}

func TestResolveAddExpertReplacesFoundationAndPro(t *testing.T) {
	engine := newTestEngine(t)
	c := Cart{Items: []LineItem{
		{ID: "foundation-kit-notes", Name: "Foundation Kit Notes", Price: decimal.NewFromInt(29), Quantity: 1},
		{ID: "pro-kit-notes", Name: "Pro Kit Notes", Price: decimal.NewFromInt(59), Quantity: 1},
	}}

	d := engine.ResolveAdd(c, candidateFor(t, "expert-kit-notes"))
	next, changed := d.Result()
	if d.Outcome() != enums.CartOutcomeUpgraded || !changed {
		t.Fatalf("expected upgrade, got %s", d.Outcome())
	}
	if next.Len() != 1 || next.Items[0].ID != "expert-kit-notes" || next.Items[0].Quantity != 1 {
		t.Fatalf("expected only expert kit, got %+v", next.Items)
	}
	if c.Len() != 2 {
		t.Fatal("input cart must not be modified")
	}
}

func TestResolveAddUpgradeTakesPrecedenceOverBlock(t *testing.T) {
	rules := testRules()
	// Register both directions for the same pair so only precedence decides.
	rules.Blocks["pro-kit-notes"] = []ProductID{"foundation-kit-notes"}
	rules.Blocks["foundation-kit-notes"] = nil
	engine, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	c := mustApply(t, engine, Empty(), "foundation-kit-notes")

	d := engine.ResolveAdd(c, candidateFor(t, "pro-kit-notes"))
	if d.Outcome() != enums.CartOutcomeUpgraded {
		t.Fatalf("expected upgrade to win over block, got %s (%s)", d.Outcome(), d.Text())
	}
	if strings.Contains(d.Text(), "already includes") {
		t.Fatalf("upgrade must not carry a block message: %q", d.Text())
	}
}

func TestResolveAddUpgradeWinsWhenHigherTierAlsoPresent(t *testing.T) {
	engine := newTestEngine(t)
	c := Cart{Items: []LineItem{
		{ID: "foundation-kit-notes", Name: "Foundation Kit Notes", Price: decimal.NewFromInt(29), Quantity: 1},
		{ID: "expert-kit-notes", Name: "Expert Kit Notes", Price: decimal.NewFromInt(99), Quantity: 1},
	}}

	d := engine.ResolveAdd(c, candidateFor(t, "pro-kit-notes"))
	if d.Outcome() != enums.CartOutcomeUpgraded {
		t.Fatalf("expected Upgraded, got %s", d.Outcome())
	}
}

func TestResolveAddBlockNamesExistingItem(t *testing.T) {
	engine := newTestEngine(t)
	c := mustApply(t, engine, Empty(), "expert-kit-notes")

	d := engine.ResolveAdd(c, candidateFor(t, "foundation-kit-notes"))
	rejected, ok := d.(Rejected)
	if !ok {
		t.Fatalf("expected Rejected, got %T", d)
	}
	if rejected.Reason != "Expert Kit Notes already includes this content." {
		t.Fatalf("unexpected reason %q", rejected.Reason)
	}
}

func TestResolveAddBlockReportsFirstTableMatch(t *testing.T) {
	engine := newTestEngine(t)
	c := Cart{Items: []LineItem{
		{ID: "expert-kit-questions", Name: "Expert Kit Questions", Price: decimal.NewFromInt(69), Quantity: 1},
		{ID: "pro-kit-questions", Name: "Pro Kit Questions", Price: decimal.NewFromInt(39), Quantity: 1},
	}}

	d := engine.ResolveAdd(c, candidateFor(t, "foundation-kit-questions"))
	if d.Text() != "Pro Kit Questions already includes this content." {
		t.Fatalf("expected first table entry to be reported, got %q", d.Text())
	}
}

func TestResolveAddBlockFallsBackToLineItemName(t *testing.T) {
	rules := testRules()
	delete(rules.Names, "expert-kit-notes")
	engine, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	c := Cart{Items: []LineItem{{ID: "expert-kit-notes", Name: "Expert Notes (legacy)", Price: decimal.NewFromInt(99), Quantity: 1}}}

	d := engine.ResolveAdd(c, candidateFor(t, "pro-kit-notes"))
	if d.Text() != "Expert Notes (legacy) already includes this content." {
		t.Fatalf("unexpected reason %q", d.Text())
	}
}

func TestResolveAddUnknownIDFallsThrough(t *testing.T) {
	engine := newTestEngine(t)
	candidate := Candidate{ID: "gift-card", Name: "Gift Card", Price: decimal.NewFromInt(25)}

	first := engine.ResolveAdd(Empty(), candidate)
	if first.Outcome() != enums.CartOutcomeAdded {
		t.Fatalf("expected Added, got %s", first.Outcome())
	}
	c, _ := first.Result()
	second := engine.ResolveAdd(c, candidate)
	if second.Outcome() != enums.CartOutcomeRejected {
		t.Fatalf("unknown ids are not stackable, got %s", second.Outcome())
	}
}

func TestResolveAddTotalsStayConsistent(t *testing.T) {
	engine := newTestEngine(t)
	steps := []ProductID{
		"foundation-kit-notes", "mock-interview-30", "pro-kit-questions",
		"mock-interview-30", "pro-kit-notes", "expert-kit-questions", "mock-interview-60",
	}
	c := Empty()
	for i, id := range steps {
		d := engine.ResolveAdd(c, candidateFor(t, id))
		if next, ok := d.Result(); ok {
			c = next
		}
		if i == 3 {
			c = c.Remove("pro-kit-questions")
		}
		assertTotalsMatchItems(t, c)
	}
	if got := ids(c); !reflect.DeepEqual(got, []ProductID{"mock-interview-30", "pro-kit-notes", "expert-kit-questions", "mock-interview-60"}) {
		t.Fatalf("unexpected final cart %v", got)
	}
}

func TestNewEngineCopiesRules(t *testing.T) {
	rules := testRules()
	engine, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	rules.Blocks["foundation-kit-notes"] = nil
	rules.Names["expert-kit-notes"] = "changed"

	c := mustApply(t, engine, Empty(), "expert-kit-notes")
	d := engine.ResolveAdd(c, candidateFor(t, "foundation-kit-notes"))
	if d.Text() != "Expert Kit Notes already includes this content." {
		t.Fatalf("engine should not observe caller mutations, got %q", d.Text())
	}
}

func TestNewEngineRejectsInvalidRules(t *testing.T) {
	rules := testRules()
	rules.Upgrades["mock-interview-60"] = []ProductID{"mock-interview-30"}
	if _, err := NewEngine(rules); err == nil {
		t.Fatal("expected error for stackable ids in tier tables")
	}
}

func assertTotalsMatchItems(t *testing.T, c Cart) {
	t.Helper()
	count := 0
	price := decimal.Zero
	for _, item := range c.Items {
		count += item.Quantity
		price = price.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totals := c.Totals()
	if totals.Count != count || !totals.Price.Equal(price) {
		t.Fatalf("totals drifted: got %d/%s want %d/%s", totals.Count, totals.Price, count, price)
	}
}
