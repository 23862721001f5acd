// Package dashboard assembles the composite read-only payload behind
// GET /dashboard from bounded store sub-queries.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/baisalikhan/next-stock/internal/core"
)

// Reader is the slice of the store the dashboard reads from.
type Reader interface {
	ListSalesSummaries(ctx context.Context, limit int) ([]core.SalesSummary, error)
	ListPurchaseSummaries(ctx context.Context, limit int) ([]core.PurchaseSummary, error)
	ListProducts(ctx context.Context, search string, limit int) ([]core.Product, error)
	ListExpensesByCategory(ctx context.Context, limit int) ([]core.ExpenseByCategory, error)
}

// Service builds dashboard snapshots bounded to limit records per section.
type Service struct {
	reader Reader
	limit  int
}

func NewService(reader Reader, limit int) *Service {
	return &Service{reader: reader, limit: limit}
}

// Limit returns the per-section record bound.
func (s *Service) Limit() int {
	return s.limit
}

// Snapshot runs the four section queries concurrently; they touch disjoint
// record sets and have no ordering dependency on each other. Empty stores
// yield empty sections, never an error, but any failing sub-query fails the
// whole snapshot with core.ErrUnavailable: the dashboard is all-or-nothing.
func (s *Service) Snapshot(ctx context.Context) (core.DashboardData, error) {
	var data core.DashboardData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reader.ListSalesSummaries(ctx, s.limit)
		if err != nil {
			return fmt.Errorf("sales summaries: %w", err)
		}
		data.SalesSummary = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListPurchaseSummaries(ctx, s.limit)
		if err != nil {
			return fmt.Errorf("purchase summaries: %w", err)
		}
		data.PurchaseSummary = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListProducts(ctx, "", s.limit)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		data.PopularProducts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListExpensesByCategory(ctx, s.limit)
		if err != nil {
			return fmt.Errorf("expenses by category: %w", err)
		}
		data.ExpenseByCategory = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.DashboardData{}, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}

	// Empty sections marshal as [] rather than null.
	if data.SalesSummary == nil {
		data.SalesSummary = []core.SalesSummary{}
	}
	if data.PurchaseSummary == nil {
		data.PurchaseSummary = []core.PurchaseSummary{}
	}
	if data.PopularProducts == nil {
		data.PopularProducts = []core.Product{}
	}
	if data.ExpenseByCategory == nil {
		data.ExpenseByCategory = []core.ExpenseByCategory{}
	}

	return data, nil
}
