package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Codingworld786/ecommerce-fullstack/internal/catalog"
	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

// ReplaceProducts swaps the whole products table for the given sequence,
// keeping its order.
func (s *Store) ReplaceProducts(ctx context.Context, products []models.Product) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	query := `
		INSERT INTO products (id, position, name, category, price, image, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range products {
		_, err := tx.ExecContext(ctx, query, p.ID, i, p.Name, string(p.Category), p.Price.String(), p.Image, p.Description)
		if err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// ListProducts returns every product in stored order.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, category, price, image, description FROM products ORDER BY position, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p        models.Product
			category string
			price    string
		)
		if err := rows.Scan(&p.ID, &p.Name, &category, &price, &p.Image, &p.Description); err != nil {
			return nil, err
		}
		p.Category = models.Category(category)
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid stored price %q: %w", p.ID, price, err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// LoadCatalog builds a read-only catalog from the products table.
func (s *Store) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return catalog.New(products)
}
