package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/baisalikhan/next-stock/internal/core"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListProducts(w, r)
	case http.MethodPost:
		s.handleCreateProduct(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	search := sanitizeInput(r.URL.Query().Get("search"))
	limit := parseLimit(r, 50, 200)

	products, err := s.products.ListProducts(ctx, search, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	var p core.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	p.Name = sanitizeInput(p.Name)

	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}
