package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

func TestDefault_LookupReturnsEveryProductUnchanged(t *testing.T) {
	c := Default()
	require.Equal(t, 12, c.Len())

	for _, p := range c.List("") {
		got, ok := c.Lookup(p.ID)
		require.True(t, ok, "product %d should resolve", p.ID)
		assert.Equal(t, p, got)
	}
}

func TestDefault_KnownProduct(t *testing.T) {
	p, ok := Default().Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Oxford Cotton Shirt", p.Name)
	assert.Equal(t, models.CategoryMen, p.Category)
	assert.True(t, decimal.RequireFromString("49.99").Equal(p.Price))
}

func TestLookup_Miss(t *testing.T) {
	_, ok := Default().Lookup(999)
	assert.False(t, ok)
}

func TestList_FilterPreservesOrder(t *testing.T) {
	c := Default()

	women := c.List(models.CategoryWomen)
	require.Len(t, women, 6)
	for i, p := range women {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, models.CategoryWomen, p.Category)
	}

	men := c.List(models.CategoryMen)
	require.Len(t, men, 6)
	assert.Equal(t, 7, men[0].ID)
	assert.Equal(t, 12, men[5].ID)
}

func TestList_ReturnsCopy(t *testing.T) {
	c := Default()
	all := c.List("")
	all[0].Name = "changed"

	p, _ := c.Lookup(all[0].ID)
	assert.Equal(t, "Classic Linen Blazer", p.Name)
}

func TestSearch(t *testing.T) {
	c := Default()

	got := c.Search("WOOL", "")
	ids := make([]int, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{6, 9}, ids)

	got = c.Search("wool", models.CategoryMen)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].ID)

	assert.Len(t, c.Search("   ", ""), 12)
	assert.Empty(t, c.Search("tuxedo", ""))
}

func TestLoad_Valid(t *testing.T) {
	doc := `
products:
  - id: 3
    name: Scarf
    category: women
    price: "10.50"
    image: scarf.jpg
    description: Warm
  - id: 1
    name: Cap
    category: men
    price: "0"
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	all := c.List("")
	require.Len(t, all, 2)
	assert.Equal(t, 3, all[0].ID)
	assert.Equal(t, "10.5", all[0].Price.String())
	assert.True(t, all[1].Price.IsZero())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"zero id", "products:\n  - {id: 0, name: x, category: men, price: '1'}\n", "id must be positive"},
		{"duplicate", "products:\n  - {id: 1, name: x, category: men, price: '1'}\n  - {id: 1, name: y, category: men, price: '1'}\n", "duplicate id"},
		{"category", "products:\n  - {id: 1, name: x, category: kids, price: '1'}\n", "unknown category"},
		{"negative", "products:\n  - {id: 1, name: x, category: men, price: '-1'}\n", "negative price"},
		{"bad price", "products:\n  - {id: 1, name: x, category: men, price: 'abc'}\n", "invalid price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWrite_LoadsBack(t *testing.T) {
	orig := Default()

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))
	assert.Contains(t, buf.String(), `price: "89.99"`)

	again, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, orig.Len(), again.Len())
	for _, p := range orig.List("") {
		got, ok := again.Lookup(p.ID)
		require.True(t, ok)
		assert.Equal(t, p.Name, got.Name)
		assert.True(t, p.Price.Equal(got.Price))
	}
}
