package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baisalikhan/next-stock/internal/core"
	"github.com/baisalikhan/next-stock/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write dataset %s: %v", name, err)
	}
}

// fullDataset writes one valid file per entity kind.
func fullDataset(t *testing.T, dir string) {
	t.Helper()
	writeDataset(t, dir, "products.json", `[
		{"productId": "p1", "name": "Widget", "price": 9.99, "stockQuantity": 100, "createdAt": "2024-01-05T09:00:00Z"}
	]`)
	writeDataset(t, dir, "users.json", `[
		{"userId": "u1", "name": "Ann", "email": "ann@example.com"}
	]`)
	writeDataset(t, dir, "expenses.json", `[
		{"expenseId": "x1", "category": "Office", "amount": 12.5, "timestamp": "2024-01-31T00:00:00Z"}
	]`)
	writeDataset(t, dir, "sales.json", `[
		{"saleId": "s1", "productId": "p1", "timestamp": "2024-01-15T14:30:00Z", "quantity": 2, "unitPrice": 9.99, "totalAmount": 19.98}
	]`)
	writeDataset(t, dir, "purchases.json", `[
		{"purchaseId": "b1", "productId": "p1", "timestamp": "2024-01-03T08:00:00Z", "quantity": 50, "unitCost": 5, "totalCost": 250}
	]`)
	writeDataset(t, dir, "salesSummary.json", `[
		{"salesSummaryId": "ss1", "totalValue": 1000, "changePercentage": 4.2, "date": "2024-01-31T00:00:00Z"}
	]`)
	writeDataset(t, dir, "purchaseSummary.json", `[
		{"purchaseSummaryId": "ps1", "totalPurchased": 500, "date": "2024-01-31T00:00:00Z"}
	]`)
	writeDataset(t, dir, "expenseSummary.json", `[
		{"expenseSummaryId": "es1", "totalExpenses": 12.5, "date": "2024-01-31T00:00:00Z"}
	]`)
	writeDataset(t, dir, "expenseByCategory.json", `[
		{"expenseByCategoryId": "ec1", "expenseSummaryId": "es1", "category": "Office", "amount": 12.5, "date": "2024-01-31T00:00:00Z"}
	]`)
}

func TestRunLoadsFullDataset(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)

	if err := New(store, dir).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	ctx := context.Background()
	products, err := store.ListProducts(ctx, "", 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].ProductID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}

	sale, err := store.GetSale(ctx, "s1")
	if err != nil {
		t.Fatalf("get sale: %v", err)
	}
	if sale.ProductID != "p1" || sale.Quantity != 2 {
		t.Fatalf("sale did not round trip: %+v", sale)
	}

	rows, err := store.ListExpensesByCategory(ctx, 10)
	if err != nil {
		t.Fatalf("list expenses by category: %v", err)
	}
	if len(rows) != 1 || rows[0].ExpenseSummaryID != "es1" {
		t.Fatalf("unexpected breakdown rows: %+v", rows)
	}
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)

	loader := New(store, dir)
	ctx := context.Background()
	if err := loader.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := loader.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	products, err := store.ListProducts(ctx, "", 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product after reseed, got %d", len(products))
	}
	users, err := store.ListUsers(ctx, 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].UserID != "u1" {
		t.Fatalf("expected same user after reseed, got %+v", users)
	}
}

func TestRunToleratesUnknownDatasetFile(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)
	// Dataset drift: no entity is called warehouses.
	writeDataset(t, dir, "warehouses.json", `[{"warehouseId": "w1"}]`)

	if err := New(store, dir).Run(context.Background()); err != nil {
		t.Fatalf("run should tolerate unknown dataset files: %v", err)
	}
	users, err := store.ListUsers(context.Background(), 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected known datasets to load, got %d users", len(users))
	}
}

func TestRunSkipsFileWithUnknownFields(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)
	// Field drift: the schema declares no colour on products.
	writeDataset(t, dir, "products.json", `[
		{"productId": "p1", "name": "Widget", "price": 9.99, "stockQuantity": 1, "colour": "red"}
	]`)
	// Depends on products, which will not load.
	writeDataset(t, dir, "sales.json", `[]`)
	writeDataset(t, dir, "purchases.json", `[]`)

	if err := New(store, dir).Run(context.Background()); err != nil {
		t.Fatalf("run should skip drifted files, not abort: %v", err)
	}

	products, err := store.ListProducts(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("drifted file must not load, got %d products", len(products))
	}
	users, err := store.ListUsers(context.Background(), 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected remaining datasets to load, got %d users", len(users))
	}
}

func TestRunAbortsOnMissingDataset(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)

	loader := New(store, dir)
	ctx := context.Background()
	if err := loader.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// An absent dataset file is an I/O failure, not drift: the rerun must
	// abort, and must do so before the reset wipes the previous load.
	if err := os.Remove(filepath.Join(dir, "sales.json")); err != nil {
		t.Fatalf("remove dataset: %v", err)
	}
	if err := loader.Run(ctx); err == nil {
		t.Fatalf("expected error for missing dataset file")
	}

	if _, err := store.GetSale(ctx, "s1"); err != nil {
		t.Fatalf("previous load must survive an aborted rerun: %v", err)
	}
}

func TestRunAbortsOnUnreadableDatasetDir(t *testing.T) {
	store := newTestStore(t)
	dir := filepath.Join(t.TempDir(), "no-such-dir")

	if err := New(store, dir).Run(context.Background()); err == nil {
		t.Fatalf("expected error for unreadable dataset directory")
	}
}

func TestRunAbortsOnDuplicateCategoryPeriod(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)
	writeDataset(t, dir, "expenseByCategory.json", `[
		{"expenseByCategoryId": "ec1", "expenseSummaryId": "es1", "category": "Office", "amount": 60, "date": "2024-01-31T00:00:00Z"},
		{"expenseByCategoryId": "ec2", "expenseSummaryId": "es1", "category": "Office", "amount": 40, "date": "2024-01-31T00:00:00Z"}
	]`)

	err := New(store, dir).Run(context.Background())
	if !errors.Is(err, core.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for duplicate (category, period), got %v", err)
	}
}

func TestRunAbortsOnMalformedDataset(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	fullDataset(t, dir)
	writeDataset(t, dir, "users.json", `[{"userId": "u1", "name": "Ann"`)

	if err := New(store, dir).Run(context.Background()); err == nil {
		t.Fatalf("expected error for malformed dataset")
	}
}
