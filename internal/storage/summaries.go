package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baisalikhan/next-stock/internal/core"
)

// CreateSalesSummary persists one precomputed sales rollup.
func (s *Store) CreateSalesSummary(ctx context.Context, sum core.SalesSummary) (core.SalesSummary, error) {
	if err := sum.Validate(); err != nil {
		return core.SalesSummary{}, err
	}
	if sum.SalesSummaryID == "" {
		sum.SalesSummaryID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sales_summary (sales_summary_id, total_value, change_percentage, date)
		 VALUES (?, ?, ?, ?)`,
		sum.SalesSummaryID, sum.TotalValue, nullFloat(sum.ChangePercentage), sum.Date)
	if err != nil {
		return core.SalesSummary{}, fmt.Errorf("create sales summary: %w", storeErr(err))
	}
	return sum, nil
}

// ListSalesSummaries returns at most limit sales summaries ordered by period
// descending, ties broken by id.
func (s *Store) ListSalesSummaries(ctx context.Context, limit int) ([]core.SalesSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sales_summary_id, total_value, change_percentage, date
		 FROM sales_summary ORDER BY date DESC, sales_summary_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales summaries: %w", err)
	}
	defer rows.Close()

	var summaries []core.SalesSummary
	for rows.Next() {
		var sum core.SalesSummary
		var change sql.NullFloat64
		if err := rows.Scan(&sum.SalesSummaryID, &sum.TotalValue, &change, &sum.Date); err != nil {
			return nil, fmt.Errorf("scan sales summary: %w", err)
		}
		if change.Valid {
			sum.ChangePercentage = &change.Float64
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales summaries: %w", err)
	}
	return summaries, nil
}

// CreatePurchaseSummary persists one precomputed purchase rollup.
func (s *Store) CreatePurchaseSummary(ctx context.Context, sum core.PurchaseSummary) (core.PurchaseSummary, error) {
	if err := sum.Validate(); err != nil {
		return core.PurchaseSummary{}, err
	}
	if sum.PurchaseSummaryID == "" {
		sum.PurchaseSummaryID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO purchase_summary (purchase_summary_id, total_purchased, change_percentage, date)
		 VALUES (?, ?, ?, ?)`,
		sum.PurchaseSummaryID, sum.TotalPurchased, nullFloat(sum.ChangePercentage), sum.Date)
	if err != nil {
		return core.PurchaseSummary{}, fmt.Errorf("create purchase summary: %w", storeErr(err))
	}
	return sum, nil
}

// ListPurchaseSummaries returns at most limit purchase summaries ordered by
// period descending, ties broken by id.
func (s *Store) ListPurchaseSummaries(ctx context.Context, limit int) ([]core.PurchaseSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT purchase_summary_id, total_purchased, change_percentage, date
		 FROM purchase_summary ORDER BY date DESC, purchase_summary_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list purchase summaries: %w", err)
	}
	defer rows.Close()

	var summaries []core.PurchaseSummary
	for rows.Next() {
		var sum core.PurchaseSummary
		var change sql.NullFloat64
		if err := rows.Scan(&sum.PurchaseSummaryID, &sum.TotalPurchased, &change, &sum.Date); err != nil {
			return nil, fmt.Errorf("scan purchase summary: %w", err)
		}
		if change.Valid {
			sum.ChangePercentage = &change.Float64
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase summaries: %w", err)
	}
	return summaries, nil
}

// CreateExpenseSummary persists one precomputed expense rollup.
func (s *Store) CreateExpenseSummary(ctx context.Context, sum core.ExpenseSummary) (core.ExpenseSummary, error) {
	if err := sum.Validate(); err != nil {
		return core.ExpenseSummary{}, err
	}
	if sum.ExpenseSummaryID == "" {
		sum.ExpenseSummaryID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expense_summary (expense_summary_id, total_expenses, date)
		 VALUES (?, ?, ?)`,
		sum.ExpenseSummaryID, sum.TotalExpenses, sum.Date)
	if err != nil {
		return core.ExpenseSummary{}, fmt.Errorf("create expense summary: %w", storeErr(err))
	}
	return sum, nil
}

// CreateExpenseByCategory persists one per-category breakdown row. The
// expense summary reference must resolve, and (category, date) pairs are
// unique; breaking either reports core.ErrConstraint.
func (s *Store) CreateExpenseByCategory(ctx context.Context, row core.ExpenseByCategory) (core.ExpenseByCategory, error) {
	if err := row.Validate(); err != nil {
		return core.ExpenseByCategory{}, err
	}
	if row.ExpenseByCategoryID == "" {
		row.ExpenseByCategoryID = newID()
	}

	// Amounts live as numeric text in the table; decimal is the one
	// in-memory representation on both sides of this boundary.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expense_by_category (expense_by_category_id, expense_summary_id, category, amount, date)
		 VALUES (?, ?, ?, ?, ?)`,
		row.ExpenseByCategoryID, row.ExpenseSummaryID, row.Category, row.Amount, row.Date)
	if err != nil {
		return core.ExpenseByCategory{}, fmt.Errorf("create expense by category: %w", storeErr(err))
	}
	return row, nil
}

// ListExpensesByCategory returns at most limit breakdown rows ordered by
// period descending, ties broken by id. Stored amounts are converted back to
// decimals while scanning; a row that fails conversion is a store error, not
// a silently string-typed amount.
func (s *Store) ListExpensesByCategory(ctx context.Context, limit int) ([]core.ExpenseByCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_by_category_id, expense_summary_id, category, amount, date
		 FROM expense_by_category ORDER BY date DESC, expense_by_category_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list expenses by category: %w", err)
	}
	defer rows.Close()

	var result []core.ExpenseByCategory
	for rows.Next() {
		var row core.ExpenseByCategory
		var amount string
		if err := rows.Scan(&row.ExpenseByCategoryID, &row.ExpenseSummaryID, &row.Category, &amount, &row.Date); err != nil {
			return nil, fmt.Errorf("scan expense by category: %w", err)
		}
		// A stored amount that does not convert is data corruption, not a
		// validation failure of the caller's input.
		if row.Amount, err = core.ParseAmount(amount); err != nil {
			return nil, fmt.Errorf("convert amount %q for %s: %v", amount, row.ExpenseByCategoryID, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses by category: %w", err)
	}
	return result, nil
}
