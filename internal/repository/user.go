package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const userColumns = "id, username, email, password_hash, role, status, created_at, updated_at"

func (s *Store) ListUsers(ctx context.Context, p model.ListParams) ([]model.User, int64, error) {
	var w whereBuilder
	w.search(p.Search, "username", "email")
	if p.Status != "" {
		w.add("status = ?", p.Status)
	}

	total, err := s.count(ctx, "users", &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	users, err := queryAll[model.User](ctx, s.getExecutor(ctx),
		"SELECT "+userColumns+" FROM users"+w.String()+" ORDER BY id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := queryOne[model.User](ctx, s.getExecutor(ctx),
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := queryOne[model.User](ctx, s.getExecutor(ctx),
		"SELECT "+userColumns+" FROM users WHERE lower(username) = lower($1)", username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return u, nil
}

func (s *Store) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := s.getExecutor(ctx).QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE role = $1 AND status = $2", model.RoleAdmin, model.StatusActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}

// CreateUser stores a user; the caller supplies an already hashed password.
func (s *Store) CreateUser(ctx context.Context, in model.UserInput, passwordHash string) (*model.User, error) {
	u, err := queryOne[model.User](ctx, s.getExecutor(ctx), `
		INSERT INTO users (username, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		in.Username, in.Email, passwordHash, in.Role, in.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// UpdateUser rewrites the user. An empty passwordHash keeps the old one.
func (s *Store) UpdateUser(ctx context.Context, id int64, in model.UserInput, passwordHash string) (*model.User, error) {
	u, err := queryOne[model.User](ctx, s.getExecutor(ctx), `
		UPDATE users
		SET username = $2, email = $3, role = $4, status = $5,
		    password_hash = COALESCE(NULLIF($6, ''), password_hash), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, in.Username, in.Email, in.Role, in.Status, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return u, nil
}

func (s *Store) DeactivateUser(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx,
		"UPDATE users SET status = $2, updated_at = now() WHERE id = $1", id, model.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to deactivate user %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to deactivate user %d: %w", id, ErrNotFound)
	}
	return nil
}
