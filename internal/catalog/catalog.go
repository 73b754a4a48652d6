package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/angelmondragon/kitcart/internal/cart"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Product is one purchasable kit.
type Product struct {
	ID       cart.ProductID  `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	FamilyID string          `json:"family_id"`
}

// Family groups products of one kind. Tiered families are ordered lowest tier first.
type Family struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stackable bool      `json:"stackable"`
	Products  []Product `json:"products"`
}

// Catalog is the validated, read-only product list.
type Catalog struct {
	families []Family
	byID     map[cart.ProductID]Product
}

type document struct {
	Families []familyDoc `yaml:"families"`
}

type familyDoc struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Stackable bool         `yaml:"stackable"`
	Products  []productDoc `yaml:"products"`
}

type productDoc struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Catalog, error) {
	if len(doc.Families) == 0 {
		return nil, errors.New("catalog has no families")
	}

	c := &Catalog{byID: make(map[cart.ProductID]Product)}
	familyIDs := make(map[string]struct{}, len(doc.Families))
	var errs error
	for fi, fam := range doc.Families {
		famID := strings.TrimSpace(fam.ID)
		switch {
		case famID == "":
			errs = multierr.Append(errs, fmt.Errorf("family %d: id is required", fi))
		case hasKey(familyIDs, famID):
			errs = multierr.Append(errs, fmt.Errorf("family %q: duplicate id", famID))
		}
		familyIDs[famID] = struct{}{}
		if len(fam.Products) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("family %q: no products", famID))
		}

		family := Family{ID: famID, Name: strings.TrimSpace(fam.Name), Stackable: fam.Stackable}
		for pi, pd := range fam.Products {
			product, err := parseProduct(famID, pd)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("family %q product %d: %w", famID, pi, err))
				continue
			}
			if _, dup := c.byID[product.ID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("product %q: duplicate id", product.ID))
				continue
			}
			c.byID[product.ID] = product
			family.Products = append(family.Products, product)
		}
		c.families = append(c.families, family)
	}
	if errs != nil {
		return nil, errs
	}
	if _, err := cart.NewEngine(c.Rules()); err != nil {
		return nil, err
	}
	return c, nil
}

func parseProduct(familyID string, doc productDoc) (Product, error) {
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		return Product{}, errors.New("id is required")
	}
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%s: name is required", id)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(doc.Price))
	if err != nil {
		return Product{}, fmt.Errorf("%s: invalid price %q", id, doc.Price)
	}
	if price.IsNegative() {
		return Product{}, fmt.Errorf("%s: price must not be negative", id)
	}
	return Product{ID: cart.ProductID(id), Name: name, Price: price, FamilyID: familyID}, nil
}

// Families returns the families in document order.
func (c *Catalog) Families() []Family {
	out := make([]Family, len(c.families))
	for i, fam := range c.families {
		out[i] = fam
		out[i].Products = append([]Product(nil), fam.Products...)
	}
	return out
}

func (c *Catalog) Product(id cart.ProductID) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Candidate implements cart.ProductLookup.
func (c *Catalog) Candidate(id cart.ProductID) (cart.Candidate, bool) {
	p, ok := c.byID[id]
	if !ok {
		return cart.Candidate{}, false
	}
	return cart.Candidate{ID: p.ID, Name: p.Name, Price: p.Price}, true
}

// Rules derives the tier tables. In a tiered family each product upgrades every lower
// tier and is blocked by every higher tier.
func (c *Catalog) Rules() cart.Rules {
	rules := cart.Rules{
		Upgrades:  make(map[cart.ProductID][]cart.ProductID),
		Blocks:    make(map[cart.ProductID][]cart.ProductID),
		Names:     make(map[cart.ProductID]string, len(c.byID)),
		Stackable: make(map[cart.ProductID]bool),
	}
	for _, fam := range c.families {
		for i, p := range fam.Products {
			rules.Names[p.ID] = p.Name
			if fam.Stackable {
				rules.Stackable[p.ID] = true
				continue
			}
			if i > 0 {
				rules.Upgrades[p.ID] = productIDs(fam.Products[:i])
			}
			if i < len(fam.Products)-1 {
				rules.Blocks[p.ID] = productIDs(fam.Products[i+1:])
			}
		}
	}
	return rules
}

func productIDs(products []Product) []cart.ProductID {
	out := make([]cart.ProductID, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func hasKey(m map[string]struct{}, key string) bool {
	_, ok := m[key]
	return ok
}
