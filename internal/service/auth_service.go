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

// Session is the result of a login or refresh.
type Session struct {
	User    model.User
	Access  auth.Token
	Refresh auth.Token
}

type AuthService struct {
	users    UserStore
	tokens   *auth.TokenManager
	sessions *auth.SessionStore
	limiter  *auth.KeyedLimiter
	log      *zap.Logger

	checkPassword func(hash, password string) error
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, sessions *auth.SessionStore, limiter *auth.KeyedLimiter, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		limiter:  limiter,
		log:      log,

		checkPassword: auth.CheckPassword,
	}
}

// Login checks credentials. clientKey identifies the caller for rate
// limiting, usually the remote IP.
func (s *AuthService) Login(ctx context.Context, in model.LoginInput, clientKey string) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		s.log.Warn("Login rate limited", zap.String("client", clientKey))
		return nil, ErrRateLimited
	}

	u, err := s.users.GetUserByUsername(ctx, in.Username)
	if errors.Is(err, repository.ErrNotFound) {
		// Same bcrypt cost as a wrong password.
		_ = s.checkPassword(auth.DummyHash(), in.Password)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkPassword(u.PasswordHash, in.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if u.Status != model.StatusActive {
		return nil, fmt.Errorf("%w: account is inactive", ErrUnauthorized)
	}

	session, err := s.issue(ctx, *u)
	if err != nil {
		return nil, err
	}
	s.log.Info("User logged in", zap.Int64("user_id", u.ID))
	return session, nil
}

// Refresh rotates a refresh token: the old one is revoked and a new pair
// issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: missing refresh token", ErrUnauthorized)
	}
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	active, err := s.sessions.Active(ctx, claims.ID, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}

	u, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if u.Status != model.StatusActive {
		return nil, fmt.Errorf("%w: account is inactive", ErrUnauthorized)
	}

	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issue(ctx, *u)
}

// Logout revokes the refresh token. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.ID)
}

// Authenticate verifies an access token.
func (s *AuthService) Authenticate(accessToken string) (auth.Principal, error) {
	if accessToken == "" {
		return auth.Principal{}, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}
	claims, err := s.tokens.Parse(accessToken, auth.AccessToken)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	id, err := claims.UserID()
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return auth.Principal{UserID: id, Role: claims.Role}, nil
}

// Me returns the user behind the request's principal.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.users.GetUser(ctx, p.UserID)
}

func (s *AuthService) issue(ctx context.Context, u model.User) (*Session, error) {
	access, err := s.tokens.Issue(u, auth.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(u, auth.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, refresh.ID, u.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	return &Session{User: u, Access: access, Refresh: refresh}, nil
}
