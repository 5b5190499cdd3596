// Package catalog holds the fixed, read-only product list the store offers.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

//go:embed products.yaml
var defaultProducts []byte

// Catalog is an ordered product sequence with O(1) lookup by id.
// It is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	products []models.Product
	byID     map[int]models.Product
}

// New validates products and builds a catalog preserving their order.
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[int]models.Product, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive, got %d", p.Name, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price %s", p.ID, p.Price)
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

type fileProduct struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
}

// Load parses a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc fileCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	products := make([]models.Product, 0, len(doc.Products))
	for _, fp := range doc.Products {
		price, err := decimal.NewFromString(strings.TrimSpace(fp.Price))
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid price %q: %w", fp.ID, fp.Price, err)
		}
		products = append(products, models.Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Category:    models.Category(fp.Category),
			Price:       price,
			Image:       fp.Image,
			Description: fp.Description,
		})
	}
	return New(products)
}

// Write encodes c as a YAML document that Load accepts.
func (c *Catalog) Write(w io.Writer) error {
	doc := fileCatalog{Products: make([]fileProduct, 0, len(c.products))}
	for _, p := range c.products {
		doc.Products = append(doc.Products, fileProduct{
			ID:          p.ID,
			Name:        p.Name,
			Category:    string(p.Category),
			Price:       p.Price.StringFixed(2),
			Image:       p.Image,
			Description: p.Description,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultProducts))
	if err != nil {
		panic("catalog: embedded products.yaml is invalid: " + err.Error())
	}
	return c
}

// Lookup returns the product with the given id. A miss is not an error.
func (c *Catalog) Lookup(id int) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns products in catalog order, optionally restricted to one category.
// An empty filter returns everything.
func (c *Catalog) List(filter models.Category) []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if filter == "" || p.Category == filter {
			out = append(out, p)
		}
	}
	return out
}

// Search filters List(filter) to products whose name or description contains
// query, ignoring case. A blank query behaves like List.
func (c *Catalog) Search(query string, filter models.Category) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	products := c.List(filter)
	if q == "" {
		return products
	}
	out := products[:0]
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Len is the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
