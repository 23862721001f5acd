package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate rollups precomputed per period. They are written by the seeder
// and read by the dashboard; request handlers never mutate them.
type (
	// SalesSummary is the total sales revenue for one period.
	SalesSummary struct {
		SalesSummaryID   string          `json:"salesSummaryId"`
		TotalValue       decimal.Decimal `json:"totalValue"`
		ChangePercentage *float64        `json:"changePercentage,omitempty"`
		Date             time.Time       `json:"date"`
	}

	// PurchaseSummary is the total purchasing spend for one period.
	PurchaseSummary struct {
		PurchaseSummaryID string          `json:"purchaseSummaryId"`
		TotalPurchased    decimal.Decimal `json:"totalPurchased"`
		ChangePercentage  *float64        `json:"changePercentage,omitempty"`
		Date              time.Time       `json:"date"`
	}

	// ExpenseSummary is the total expenses for one period.
	ExpenseSummary struct {
		ExpenseSummaryID string          `json:"expenseSummaryId"`
		TotalExpenses    decimal.Decimal `json:"totalExpenses"`
		Date             time.Time       `json:"date"`
	}

	// ExpenseByCategory breaks one ExpenseSummary down per category.
	// (Category, Date) pairs are unique across the store.
	ExpenseByCategory struct {
		ExpenseByCategoryID string          `json:"expenseByCategoryId"`
		ExpenseSummaryID    string          `json:"expenseSummaryId"`
		Category            string          `json:"category"`
		Amount              decimal.Decimal `json:"amount"`
		Date                time.Time       `json:"date"`
	}
)

// DashboardData is the composite payload behind GET /dashboard: the four
// bounded views the dashboard renders, each ordered most recent first.
type DashboardData struct {
	SalesSummary      []SalesSummary      `json:"salesSummary"`
	PurchaseSummary   []PurchaseSummary   `json:"purchaseSummary"`
	PopularProducts   []Product           `json:"popularProducts"`
	ExpenseByCategory []ExpenseByCategory `json:"expenseByCategorySummary"`
}

func (s SalesSummary) Validate() error {
	if s.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	if s.TotalValue.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (p PurchaseSummary) Validate() error {
	if p.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	if p.TotalPurchased.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (e ExpenseSummary) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	if e.TotalExpenses.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (e ExpenseByCategory) Validate() error {
	if e.ExpenseSummaryID == "" {
		return ErrMissingSummaryRef
	}
	if e.Category == "" {
		return ErrEmptyCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
