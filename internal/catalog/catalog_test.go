package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/kitcart/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogDerivesTierTables(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	rules := c.Rules()
	assert.Equal(t, map[cart.ProductID][]cart.ProductID{
		"pro-kit-notes":        {"foundation-kit-notes"},
		"expert-kit-notes":     {"foundation-kit-notes", "pro-kit-notes"},
		"pro-kit-questions":    {"foundation-kit-questions"},
		"expert-kit-questions": {"foundation-kit-questions", "pro-kit-questions"},
	}, rules.Upgrades)
	assert.Equal(t, map[cart.ProductID][]cart.ProductID{
		"foundation-kit-notes":     {"pro-kit-notes", "expert-kit-notes"},
		"pro-kit-notes":            {"expert-kit-notes"},
		"foundation-kit-questions": {"pro-kit-questions", "expert-kit-questions"},
		"pro-kit-questions":        {"expert-kit-questions"},
	}, rules.Blocks)
	assert.Equal(t, map[cart.ProductID]bool{"mock-interview-30": true, "mock-interview-60": true}, rules.Stackable)
	assert.Equal(t, "Expert Kit Notes", rules.Names["expert-kit-notes"])
	assert.Len(t, rules.Names, 8)
}

func TestDefaultCatalogLookups(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, ok := c.Product("pro-kit-questions")
	require.True(t, ok)
	assert.Equal(t, "questions", p.FamilyID)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(39)))

	candidate, ok := c.Candidate("mock-interview-60")
	require.True(t, ok)
	assert.Equal(t, "60-Minute Mock Interview", candidate.Name)

	_, ok = c.Candidate("gift-card")
	assert.False(t, ok)

	families := c.Families()
	require.Len(t, families, 3)
	assert.Equal(t, cart.ProductID("foundation-kit-notes"), families[0].Products[0].ID)
	assert.Len(t, c.Rules().Names, 8)
}

func TestDefaultCatalogDrivesEngine(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	engine, err := cart.NewEngine(c.Rules())
	require.NoError(t, err)

	expert, _ := c.Candidate("expert-kit-notes")
	foundation, _ := c.Candidate("foundation-kit-notes")
	first, _ := engine.ResolveAdd(cart.Empty(), expert).Result()

	d := engine.ResolveAdd(first, foundation)
	assert.Equal(t, "Expert Kit Notes already includes this content.", d.Text())
}

func TestFamiliesReturnsCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	families := c.Families()
	families[0].Products[0].Name = "changed"
	p, _ := c.Product(families[0].Products[0].ID)
	assert.Equal(t, "Foundation Kit Notes", p.Name)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Rules().Names, 8)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
families:
  - id: courses
    name: Courses
    products:
      - {id: intro, name: Intro Course, price: "10"}
      - {id: advanced, name: Advanced Course, price: "25.50"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	rules := c.Rules()
	assert.Equal(t, []cart.ProductID{"intro"}, rules.Upgrades["advanced"])
	assert.Equal(t, []cart.ProductID{"advanced"}, rules.Blocks["intro"])

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":    `families: []`,
		"not yaml": `families: [`,
		"unknown field": `
families:
  - id: a
    name: A
    colour: red
    products: [{id: x, name: X, price: "1"}]`,
		"duplicate product": `
families:
  - id: a
    name: A
    products: [{id: x, name: X, price: "1"}]
  - id: b
    name: B
    products: [{id: x, name: X again, price: "2"}]`,
		"duplicate family": `
families:
  - id: a
    name: A
    products: [{id: x, name: X, price: "1"}]
  - id: a
    name: A
    products: [{id: y, name: Y, price: "1"}]`,
		"missing name":   `families: [{id: a, name: A, products: [{id: x, price: "1"}]}]`,
		"negative price": `families: [{id: a, name: A, products: [{id: x, name: X, price: "-1"}]}]`,
		"bad price":      `families: [{id: a, name: A, products: [{id: x, name: X, price: "cheap"}]}]`,
		"missing id":     `families: [{id: a, name: A, products: [{name: X, price: "1"}]}]`,
		"no products":    `families: [{id: a, name: A, products: []}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
