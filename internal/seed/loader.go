// Package seed brings an empty or inconsistent store to a known-good state
// from a directory of JSON dataset files, one file per entity kind. It runs
// with exclusive store access: a full reset of every kind strictly precedes
// any loading, and kinds load in an order derived from the declared
// foreign-key graph so references always resolve.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/baisalikhan/next-stock/internal/core"
	"github.com/baisalikhan/next-stock/internal/storage"
)

// Loader seeds a store from dir. Not safe for use concurrently with live
// traffic; it is meant for initialization and tests.
type Loader struct {
	store *storage.Store
	dir   string
}

func New(store *storage.Store, dir string) *Loader {
	return &Loader{store: store, dir: dir}
}

// Run resets every entity kind and reloads each from its dataset file.
// Dataset drift (a file naming an unknown entity, or records carrying fields
// the schema does not declare) is reported and skipped; everything else,
// including a missing or unreadable dataset file, aborts the run. The reset
// wipes all kinds before any load, so a partial dataset directory must fail
// loudly rather than leave a subset loaded.
func (l *Loader) Run(ctx context.Context) error {
	order, err := loadOrder()
	if err != nil {
		return fmt.Errorf("compute load order: %w", err)
	}

	// The reset is destructive; refuse to start it from a directory that
	// cannot back a full reload.
	if err := l.checkDatasets(ctx, order); err != nil {
		return err
	}

	// Reset runs dependents-first (reverse load order) so foreign keys stay
	// enforced while rows disappear, and completes for all kinds before any
	// load starts.
	for i := len(order) - 1; i >= 0; i-- {
		if err := l.store.DeleteAll(ctx, order[i]); err != nil {
			if errors.Is(err, core.ErrSchemaMismatch) {
				slog.WarnContext(ctx, "Skipping reset for unknown entity", "entity", order[i], "error", err)
				continue
			}
			return fmt.Errorf("reset %s: %w", order[i], err)
		}
		slog.InfoContext(ctx, "Cleared entity data", "entity", order[i])
	}

	for _, kind := range order {
		if err := l.loadKind(ctx, kind); err != nil {
			if errors.Is(err, core.ErrSchemaMismatch) {
				slog.WarnContext(ctx, "Skipping dataset", "entity", kind, "error", err)
				continue
			}
			return fmt.Errorf("load %s: %w", kind, err)
		}
	}

	return nil
}

// loadKind parses one dataset file and creates its records in file order.
// Any read failure is fatal; files are only skipped for content drift, never
// for being unreadable.
func (l *Loader) loadKind(ctx context.Context, kind core.EntityKind) error {
	path := filepath.Join(l.dir, string(kind)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset %s: %w", filepath.Base(path), err)
	}

	count, err := createAll(ctx, l.store, kind, data)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Seeded entity", "entity", kind, "records", count, "file", filepath.Base(path))
	return nil
}

// checkDatasets inspects the dataset directory before the reset phase. An
// unreadable directory or a missing dataset file for any kind is fatal; a
// .json file naming no declared entity kind is a schema mismatch, logged and
// tolerated (drifted files are never loaded).
func (l *Loader) checkDatasets(ctx context.Context, order []core.EntityKind) error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read dataset directory: %w", err)
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		present[name] = true
		kind := core.EntityKind(strings.TrimSuffix(name, ".json"))
		if !kind.Valid() {
			slog.WarnContext(ctx, "Dataset file matches no entity",
				"file", name, "error", core.ErrSchemaMismatch)
		}
	}

	for _, kind := range order {
		if name := string(kind) + ".json"; !present[name] {
			return fmt.Errorf("missing dataset file %s", name)
		}
	}
	return nil
}

// decodeStrict unmarshals a dataset file into records of one entity type,
// rejecting fields the schema does not declare.
func decodeStrict[T any](data []byte) ([]T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var records []T
	if err := dec.Decode(&records); err != nil {
		// encoding/json exposes unknown-field rejection only through the
		// message text; there is no typed error to match on.
		if strings.Contains(err.Error(), "unknown field") {
			return nil, fmt.Errorf("%w: %v", core.ErrSchemaMismatch, err)
		}
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	// A dataset is a single finite array; trailing content is malformed.
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, fmt.Errorf("parse dataset: trailing content after records")
	}
	return records, nil
}

func loadRecords[T any](ctx context.Context, data []byte, create func(context.Context, T) (T, error)) (int, error) {
	records, err := decodeStrict[T](data)
	if err != nil {
		return 0, err
	}
	for i, r := range records {
		if _, err := create(ctx, r); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return len(records), nil
}

// createAll dispatches a raw dataset to the typed create path for its kind.
// The mapping is closed: adding an entity kind without extending it is a
// compile-visible gap here, not a runtime name lookup.
func createAll(ctx context.Context, st *storage.Store, kind core.EntityKind, data []byte) (int, error) {
	switch kind {
	case core.KindProduct:
		return loadRecords(ctx, data, st.CreateProduct)
	case core.KindUser:
		return loadRecords(ctx, data, st.CreateUser)
	case core.KindExpense:
		return loadRecords(ctx, data, st.CreateExpense)
	case core.KindSale:
		return loadRecords(ctx, data, st.CreateSale)
	case core.KindPurchase:
		return loadRecords(ctx, data, st.CreatePurchase)
	case core.KindSalesSummary:
		return loadRecords(ctx, data, st.CreateSalesSummary)
	case core.KindPurchaseSummary:
		return loadRecords(ctx, data, st.CreatePurchaseSummary)
	case core.KindExpenseSummary:
		return loadRecords(ctx, data, st.CreateExpenseSummary)
	case core.KindExpenseByCategory:
		return loadRecords(ctx, data, st.CreateExpenseByCategory)
	default:
		return 0, fmt.Errorf("%w: no store for entity %q", core.ErrSchemaMismatch, kind)
	}
}
