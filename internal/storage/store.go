package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baisalikhan/next-stock/internal/core"

	sqlite3 "modernc.org/sqlite"
)

// Store is the relational store for all transactional and aggregate records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at dbPath and runs
// pending migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Foreign keys are off by default in sqlite; the referential invariants
	// depend on them being enforced on every connection.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// tableFor maps an entity kind to its table. The mapping is the single place
// a kind becomes a table name.
func tableFor(kind core.EntityKind) (string, bool) {
	switch kind {
	case core.KindProduct:
		return "products", true
	case core.KindUser:
		return "users", true
	case core.KindExpense:
		return "expenses", true
	case core.KindSale:
		return "sales", true
	case core.KindPurchase:
		return "purchases", true
	case core.KindSalesSummary:
		return "sales_summary", true
	case core.KindPurchaseSummary:
		return "purchase_summary", true
	case core.KindExpenseSummary:
		return "expense_summary", true
	case core.KindExpenseByCategory:
		return "expense_by_category", true
	default:
		return "", false
	}
}

// DeleteAll removes every record of the given kind. Deleting from an empty
// table is a no-op. An unknown kind is a schema mismatch, not a store error.
func (s *Store) DeleteAll(ctx context.Context, kind core.EntityKind) error {
	table, ok := tableFor(kind)
	if !ok {
		return fmt.Errorf("%w: no store for entity %q", core.ErrSchemaMismatch, kind)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("delete all %s: %w", table, storeErr(err))
	}
	return nil
}

// newID returns a random record identifier, used when the caller did not
// supply one.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("read random id bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

// storeErr classifies driver errors: uniqueness and foreign-key breaches map
// to core.ErrConstraint so callers can branch on errors.Is.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite3.Error
	if errors.As(err, &se) && se.Code()&0xff == 19 { // SQLITE_CONSTRAINT
		return fmt.Errorf("%w: %v", core.ErrConstraint, err)
	}
	return err
}
