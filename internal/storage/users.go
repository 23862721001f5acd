package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baisalikhan/next-stock/internal/core"
)

// CreateUser persists one user. Email uniqueness is enforced by the store;
// a duplicate reports core.ErrConstraint and leaves the store unchanged.
func (s *Store) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	if u.UserID == "" {
		u.UserID = newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email) VALUES (?, ?, ?)`,
		u.UserID, u.Name, u.Email)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", storeErr(err))
	}

	slog.InfoContext(ctx, "User created", "user_id", u.UserID, "email", u.Email)
	return u, nil
}

// ListUsers returns at most limit users ordered by name, ties broken by id.
func (s *Store) ListUsers(ctx context.Context, limit int) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, name, email FROM users ORDER BY name, user_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
