package http

import (
	"context"
	"net/http"
	"time"

	"github.com/baisalikhan/next-stock/internal/core"
)

// handleExpenses lists raw expense events, newest first.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	expenses, err := s.expenses.ListExpenses(ctx, parseLimit(r, 50, 200))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// handleExpensesByCategory lists the per-category aggregate rows, newest
// period first. Amounts arrive already converted to decimals by the store.
func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	rows, err := s.expenses.ListExpensesByCategory(ctx, parseLimit(r, 50, 200))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []core.ExpenseByCategory{}
	}
	writeJSON(w, http.StatusOK, rows)
}
