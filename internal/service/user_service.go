package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
)

type UserService struct {
	store UserStore
	log   *zap.Logger
}

func NewUserService(store UserStore, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func (s *UserService) List(ctx context.Context, p model.ListParams) (model.Page[model.User], error) {
	p = p.Normalize()
	users, total, err := s.store.ListUsers(ctx, p)
	if err != nil {
		return model.Page[model.User]{}, err
	}
	return model.NewPage(users, p, total), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	in.Normalize()
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u, err := s.store.CreateUser(ctx, in, hash)
	if err != nil {
		return nil, err
	}
	s.log.Info("User created", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Update rewrites a user. Admins cannot demote or deactivate themselves.
func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	in.Normalize()
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	if isSelf(ctx, id) && (in.Role != model.RoleAdmin || in.Status != model.StatusActive) {
		return nil, fmt.Errorf("%w: cannot demote or deactivate your own account", ErrForbidden)
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	return s.store.UpdateUser(ctx, id, in, hash)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if isSelf(ctx, id) {
		return fmt.Errorf("%w: cannot deactivate your own account", ErrForbidden)
	}
	if err := s.store.DeactivateUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("User deactivated", zap.Int64("user_id", id))
	return nil
}

// EnsureAdmin creates the first administrator when none exists.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	n, err := s.store.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = s.Create(ctx, model.UserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
		Status:   model.StatusActive,
	})
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("seed admin %q clashes with an existing non-admin user: %w", username, err)
	}
	return err
}

func isSelf(ctx context.Context, id int64) bool {
	p, ok := auth.PrincipalFrom(ctx)
	return ok && p.UserID == id
}
