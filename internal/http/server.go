package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/baisalikhan/next-stock/internal/core"
	"github.com/baisalikhan/next-stock/internal/dashboard"
)

// Ports consumed by the request handlers.
type (
	ProductStore interface {
		CreateProduct(ctx context.Context, p core.Product) (core.Product, error)
		ListProducts(ctx context.Context, search string, limit int) ([]core.Product, error)
	}

	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		ListUsers(ctx context.Context, limit int) ([]core.User, error)
	}

	ExpenseStore interface {
		ListExpenses(ctx context.Context, limit int) ([]core.Expense, error)
		ListExpensesByCategory(ctx context.Context, limit int) ([]core.ExpenseByCategory, error)
	}
)

type Server struct {
	http.Server
	products    ProductStore
	users       UserStore
	expenses    ExpenseStore
	dash        *dashboard.Service
	rateLimiter *rateLimiter

	// Snapshot cache in front of the dashboard read path, invalidated by
	// every mutating request.
	dashCache *lruCache[core.DashboardData]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, products ProductStore, users UserStore, expenses ExpenseStore, dash *dashboard.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		products:         products,
		users:            users,
		expenses:         expenses,
		dash:             dash,
		rateLimiter:      newRateLimiter(),
		dashCache:        newLRUCache[core.DashboardData](10, 30*time.Second),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/products", s.withMiddleware(s.handleProducts))
	mux.HandleFunc("/users", s.withMiddleware(s.handleUsers))
	mux.HandleFunc("/expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("/expenses/by-category", s.withMiddleware(s.handleExpensesByCategory))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// startCacheCleanup runs periodic cleanup for the snapshot cache.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
