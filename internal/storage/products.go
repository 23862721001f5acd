package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/baisalikhan/next-stock/internal/core"
)

// CreateProduct persists one product and returns it with any generated
// identifier filled in. A nonexistent id is generated; the insert is atomic,
// so a constraint breach leaves the store unchanged.
func (s *Store) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	if err := p.Validate(); err != nil {
		return core.Product{}, err
	}
	if p.ProductID == "" {
		p.ProductID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (product_id, name, price, rating, stock_quantity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ProductID, p.Name, p.Price, nullFloat(p.Rating), p.StockQuantity, p.CreatedAt)
	if err != nil {
		return core.Product{}, fmt.Errorf("create product: %w", storeErr(err))
	}

	slog.InfoContext(ctx, "Product created",
		"product_id", p.ProductID,
		"name", p.Name,
		"stock_quantity", p.StockQuantity)

	return p, nil
}

// GetProduct retrieves one product by id.
func (s *Store) GetProduct(ctx context.Context, id string) (core.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT product_id, name, price, rating, stock_quantity, created_at
		 FROM products WHERE product_id = ?`, id)
	return scanProduct(row)
}

// ListProducts returns at most limit products, newest first, ties broken by
// id so identical data always lists in the same order. A non-empty search
// narrows by name substring.
func (s *Store) ListProducts(ctx context.Context, search string, limit int) ([]core.Product, error) {
	query := `SELECT product_id, name, price, rating, stock_quantity, created_at
		 FROM products`
	args := []any{}
	if search != "" {
		query += ` WHERE name LIKE '%' || ? || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC, product_id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (core.Product, error) {
	var p core.Product
	var rating sql.NullFloat64
	if err := row.Scan(&p.ProductID, &p.Name, &p.Price, &rating, &p.StockQuantity, &p.CreatedAt); err != nil {
		return core.Product{}, fmt.Errorf("scan product: %w", err)
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	return p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
