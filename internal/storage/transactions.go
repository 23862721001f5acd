package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baisalikhan/next-stock/internal/core"
)

// CreateSale persists one sale event. The product reference must resolve;
// a dangling reference reports core.ErrConstraint.
func (s *Store) CreateSale(ctx context.Context, sale core.Sale) (core.Sale, error) {
	if err := sale.Validate(); err != nil {
		return core.Sale{}, err
	}
	if sale.SaleID == "" {
		sale.SaleID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sales (sale_id, product_id, timestamp, quantity, unit_price, total_amount)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sale.SaleID, sale.ProductID, sale.Timestamp, sale.Quantity, sale.UnitPrice, sale.TotalAmount)
	if err != nil {
		return core.Sale{}, fmt.Errorf("create sale: %w", storeErr(err))
	}

	slog.InfoContext(ctx, "Sale recorded",
		"sale_id", sale.SaleID,
		"product_id", sale.ProductID,
		"quantity", sale.Quantity)
	return sale, nil
}

// GetSale retrieves one sale by id.
func (s *Store) GetSale(ctx context.Context, id string) (core.Sale, error) {
	var sale core.Sale
	err := s.db.QueryRowContext(ctx,
		`SELECT sale_id, product_id, timestamp, quantity, unit_price, total_amount
		 FROM sales WHERE sale_id = ?`, id).
		Scan(&sale.SaleID, &sale.ProductID, &sale.Timestamp, &sale.Quantity, &sale.UnitPrice, &sale.TotalAmount)
	if err != nil {
		return core.Sale{}, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// CreatePurchase persists one restocking event. The product reference must
// resolve; a dangling reference reports core.ErrConstraint.
func (s *Store) CreatePurchase(ctx context.Context, p core.Purchase) (core.Purchase, error) {
	if err := p.Validate(); err != nil {
		return core.Purchase{}, err
	}
	if p.PurchaseID == "" {
		p.PurchaseID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO purchases (purchase_id, product_id, timestamp, quantity, unit_cost, total_cost)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.PurchaseID, p.ProductID, p.Timestamp, p.Quantity, p.UnitCost, p.TotalCost)
	if err != nil {
		return core.Purchase{}, fmt.Errorf("create purchase: %w", storeErr(err))
	}

	slog.InfoContext(ctx, "Purchase recorded",
		"purchase_id", p.PurchaseID,
		"product_id", p.ProductID,
		"quantity", p.Quantity)
	return p, nil
}

// CreateExpense persists one expense event.
func (s *Store) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ExpenseID == "" {
		e.ExpenseID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (expense_id, category, amount, timestamp)
		 VALUES (?, ?, ?, ?)`,
		e.ExpenseID, e.Category, e.Amount, e.Timestamp)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", storeErr(err))
	}

	slog.InfoContext(ctx, "Expense recorded",
		"expense_id", e.ExpenseID,
		"category", e.Category)
	return e, nil
}

// ListExpenses returns at most limit expenses, newest first, ties broken by id.
func (s *Store) ListExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, category, amount, timestamp
		 FROM expenses ORDER BY timestamp DESC, expense_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ExpenseID, &e.Category, &e.Amount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
