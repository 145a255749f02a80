// Package catalog enumerates the study's published data products and their
// provenance. The product list ships embedded in the binary and is served
// read-only by the HTTP adapter.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var embeddedProducts []byte

// Expected product count: four continental-US solstice runs, two city
// atmosphere tables, two city loudness tables, one county exposure table.
const expectedProducts = 9

// Date is a calendar day in a product's coverage range.
type Date struct {
	time.Time
}

// UnmarshalYAML parses YYYY-MM-DD values.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("catalog: parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date back to YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON parses YYYY-MM-DD values.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("catalog: parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Product describes one published spreadsheet artifact.
type Product struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Source      string   `yaml:"source" json:"source"` // gfs, radiosonde, or census
	Format      string   `yaml:"format" json:"format"`
	Season      string   `yaml:"season,omitempty" json:"season,omitempty"`
	UTCHour     int      `yaml:"utc_hour" json:"utc_hour"`
	Cities      []string `yaml:"cities,omitempty" json:"cities,omitempty"`
	StartDate   Date     `yaml:"start_date" json:"start_date"`
	EndDate     Date     `yaml:"end_date" json:"end_date"`
}

// Catalog is the validated set of data products.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

type document struct {
	Products []Product `yaml:"products"`
}

// Load parses and validates the embedded product list.
func Load() (*Catalog, error) {
	return Parse(embeddedProducts)
}

// Parse builds a Catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse products: %w", err)
	}

	c := &Catalog{
		products: doc.Products,
		byID:     make(map[string]Product, len(doc.Products)),
	}
	for _, p := range doc.Products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = p
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.products) != expectedProducts {
		return fmt.Errorf("catalog: expected %d products, found %d", expectedProducts, len(c.products))
	}
	for _, p := range c.products {
		if p.ID == "" || p.Title == "" || p.Source == "" || p.Format == "" {
			return fmt.Errorf("catalog: product %q missing required fields", p.ID)
		}
		switch p.Source {
		case "gfs", "radiosonde", "census":
		default:
			return fmt.Errorf("catalog: product %q has unknown source %q", p.ID, p.Source)
		}
		if p.StartDate.IsZero() || p.EndDate.IsZero() || p.EndDate.Before(p.StartDate.Time) {
			return fmt.Errorf("catalog: product %q has an invalid date range", p.ID)
		}
	}
	return nil
}

// List returns all products in document order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a single product.
func (c *Catalog) ByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
