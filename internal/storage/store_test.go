package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baisalikhan/next-stock/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProductRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := 4.5
	in := core.Product{
		ProductID:     "p1",
		Name:          "Widget",
		Price:         decimal.NewFromFloat(9.99),
		Rating:        &r,
		StockQuantity: 100,
		CreatedAt:     time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	created, err := store.CreateProduct(ctx, in)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ProductID != "p1" {
		t.Fatalf("expected supplied id to be kept, got %q", created.ProductID)
	}

	got, err := store.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != in.Name || got.StockQuantity != in.StockQuantity {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Price.Equal(in.Price) {
		t.Fatalf("price mismatch: got %s want %s", got.Price, in.Price)
	}
	if got.Rating == nil || *got.Rating != r {
		t.Fatalf("rating mismatch: %v", got.Rating)
	}
	if !got.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("created_at mismatch: got %v want %v", got.CreatedAt, in.CreatedAt)
	}
}

func TestCreateProductGeneratesID(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateProduct(context.Background(), core.Product{
		Name:  "Widget",
		Price: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ProductID == "" {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected creation time to be set")
	}
}

func TestUserUniqueEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, core.User{Name: "Ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := store.CreateUser(ctx, core.User{Name: "Other Ann", Email: "ann@example.com"})
	if !errors.Is(err, core.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for duplicate email, got %v", err)
	}

	// The failed create left the store unchanged.
	users, err := store.ListUsers(ctx, 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestSaleRequiresProduct(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sale := core.Sale{
		ProductID:   "missing",
		Timestamp:   time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Quantity:    2,
		UnitPrice:   decimal.NewFromFloat(9.99),
		TotalAmount: decimal.NewFromFloat(19.98),
	}
	if _, err := store.CreateSale(ctx, sale); !errors.Is(err, core.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for dangling product ref, got %v", err)
	}

	if _, err := store.CreateProduct(ctx, core.Product{ProductID: "missing", Name: "Widget", Price: decimal.NewFromFloat(9.99), StockQuantity: 100}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	created, err := store.CreateSale(ctx, sale)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	got, err := store.GetSale(ctx, created.SaleID)
	if err != nil {
		t.Fatalf("get sale: %v", err)
	}
	if got.Quantity != 2 || !got.TotalAmount.Equal(sale.TotalAmount) || !got.Timestamp.Equal(sale.Timestamp) {
		t.Fatalf("sale round trip mismatch: %+v", got)
	}
}

func TestExpenseByCategoryUniquePeriod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	sum, err := store.CreateExpenseSummary(ctx, core.ExpenseSummary{
		TotalExpenses: decimal.NewFromInt(100),
		Date:          date,
	})
	if err != nil {
		t.Fatalf("create expense summary: %v", err)
	}

	row := core.ExpenseByCategory{
		ExpenseSummaryID: sum.ExpenseSummaryID,
		Category:         "Salaries",
		Amount:           decimal.NewFromInt(80),
		Date:             date,
	}
	if _, err := store.CreateExpenseByCategory(ctx, row); err != nil {
		t.Fatalf("create expense by category: %v", err)
	}
	if _, err := store.CreateExpenseByCategory(ctx, row); !errors.Is(err, core.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for duplicate (category, period), got %v", err)
	}

	// Dangling summary reference is also a constraint breach.
	row.ExpenseSummaryID = "missing"
	row.Category = "Office"
	if _, err := store.CreateExpenseByCategory(ctx, row); !errors.Is(err, core.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for dangling summary ref, got %v", err)
	}
}

func TestExpenseByCategoryAmountConversion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	sum, err := store.CreateExpenseSummary(ctx, core.ExpenseSummary{TotalExpenses: decimal.NewFromInt(1), Date: date})
	if err != nil {
		t.Fatalf("create expense summary: %v", err)
	}
	want := decimal.RequireFromString("1120.40")
	if _, err := store.CreateExpenseByCategory(ctx, core.ExpenseByCategory{
		ExpenseSummaryID: sum.ExpenseSummaryID,
		Category:         "Office",
		Amount:           want,
		Date:             date,
	}); err != nil {
		t.Fatalf("create expense by category: %v", err)
	}

	rows, err := store.ListExpensesByCategory(ctx, 10)
	if err != nil {
		t.Fatalf("list expenses by category: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].Amount.Equal(want) {
		t.Fatalf("amount not converted to decimal: got %s want %s", rows[0].Amount, want)
	}
}

func TestListSalesSummariesOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := store.CreateSalesSummary(ctx, core.SalesSummary{
			SalesSummaryID: fmt.Sprintf("s%02d", i),
			TotalValue:     decimal.NewFromInt(int64(1000 + i)),
			Date:           time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create sales summary %d: %v", i, err)
		}
	}

	got, err := store.ListSalesSummaries(ctx, 5)
	if err != nil {
		t.Fatalf("list sales summaries: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 summaries, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("summaries not ordered by period descending: %v after %v", got[i].Date, got[i-1].Date)
		}
	}
	if got[0].SalesSummaryID != "s14" {
		t.Fatalf("expected most recent summary first, got %s", got[0].SalesSummaryID)
	}
}

func TestDeleteAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, core.User{Name: "Ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := store.DeleteAll(ctx, core.KindUser); err != nil {
		t.Fatalf("delete all users: %v", err)
	}
	users, err := store.ListUsers(ctx, 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}

	// Deleting an already-empty collection is a no-op.
	if err := store.DeleteAll(ctx, core.KindUser); err != nil {
		t.Fatalf("delete all on empty store: %v", err)
	}

	// An unknown kind is a schema mismatch.
	if err := store.DeleteAll(ctx, core.EntityKind("warehouses")); !errors.Is(err, core.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestListProductsSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	names := []string{"Cordless Drill", "Claw Hammer", "Drill Press"}
	for i, name := range names {
		_, err := store.CreateProduct(ctx, core.Product{
			ProductID:     fmt.Sprintf("p%d", i),
			Name:          name,
			Price:         decimal.NewFromInt(10),
			StockQuantity: 1,
			CreatedAt:     time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create product %q: %v", name, err)
		}
	}

	got, err := store.ListProducts(ctx, "Drill", 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// Newest first.
	if got[0].Name != "Drill Press" || got[1].Name != "Cordless Drill" {
		t.Fatalf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestQueriesRespectCancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.ListProducts(ctx, "", 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from list, got %v", err)
	}
	_, err := store.CreateProduct(ctx, core.Product{
		Name:          "Widget",
		Price:         decimal.NewFromInt(1),
		StockQuantity: 1,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from create, got %v", err)
	}
}
