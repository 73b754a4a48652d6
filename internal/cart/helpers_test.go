package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

var testProducts = map[ProductID]struct {
	name  string
	price string
}{
	"foundation-kit-notes":     {"Foundation Kit Notes", "29.00"},
	"pro-kit-notes":            {"Pro Kit Notes", "59.00"},
	"expert-kit-notes":         {"Expert Kit Notes", "99.00"},
	"foundation-kit-questions": {"Foundation Kit Questions", "19.00"},
	"pro-kit-questions":        {"Pro Kit Questions", "39.00"},
	"expert-kit-questions":     {"Expert Kit Questions", "69.00"},
	"mock-interview-30":        {"30-Minute Mock Interview", "49.00"},
	"mock-interview-60":        {"60-Minute Mock Interview", "89.00"},
}

func testRules() Rules {
	names := make(map[ProductID]string, len(testProducts))
	for id, p := range testProducts {
		names[id] = p.name
	}
	return Rules{
		Upgrades: map[ProductID][]ProductID{
			"pro-kit-notes":        {"foundation-kit-notes"},
			"expert-kit-notes":     {"foundation-kit-notes", "pro-kit-notes"},
			"pro-kit-questions":    {"foundation-kit-questions"},
			"expert-kit-questions": {"foundation-kit-questions", "pro-kit-questions"},
		},
		Blocks: map[ProductID][]ProductID{
			"foundation-kit-notes":     {"pro-kit-notes", "expert-kit-notes"},
			"pro-kit-notes":            {"expert-kit-notes"},
			"foundation-kit-questions": {"pro-kit-questions", "expert-kit-questions"},
			"pro-kit-questions":        {"expert-kit-questions"},
		},
		Names: names,
		Stackable: map[ProductID]bool{
			"mock-interview-30": true,
			"mock-interview-60": true,
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testRules())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func candidateFor(t *testing.T, id ProductID) Candidate {
	t.Helper()
	p, ok := testProducts[id]
	if !ok {
		t.Fatalf("unknown test product %q", id)
	}
	return Candidate{ID: id, Name: p.name, Price: decimal.RequireFromString(p.price)}
}

// mustApply resolves the add and returns the resulting cart, failing on rejections.
func mustApply(t *testing.T, engine *Engine, c Cart, id ProductID) Cart {
	t.Helper()
	d := engine.ResolveAdd(c, candidateFor(t, id))
	next, ok := d.Result()
	if !ok {
		t.Fatalf("adding %s: unexpected %s: %s", id, d.Outcome(), d.Text())
	}
	return next
}

func ids(c Cart) []ProductID {
	out := make([]ProductID, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, item.ID)
	}
	return out
}

// testLookup serves the test products as a ProductLookup.
type testLookup struct{}

func (testLookup) Candidate(id ProductID) (Candidate, bool) {
	p, ok := testProducts[id]
	if !ok {
		return Candidate{}, false
	}
	return Candidate{ID: id, Name: p.name, Price: decimal.RequireFromString(p.price)}, true
}
