package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

func newAuthFixture(t *testing.T, perMinute int) (*memStore, *AuthService, *UserService) {
	t.Helper()
	store := newMemStore()
	users := NewUserService(store, zap.NewNop())
	tokens := auth.NewTokenManager("test-secret", time.Minute, time.Hour)
	svc := NewAuthService(store, tokens, auth.NewSessionStore(nil), auth.NewKeyedLimiter(perMinute), zap.NewNop())
	return store, svc, users
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	_, svc, users := newAuthFixture(t, 10)
	ctx := context.Background()

	u, err := users.Create(ctx, model.UserInput{Username: "planner", Email: "Planner@BS.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, "planner@bs.example", u.Email)

	s, err := svc.Login(ctx, model.LoginInput{Username: "planner", Password: "s3cret-pass"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.User.ID)
	assert.NotEmpty(t, s.Access.Value)
	assert.NotEmpty(t, s.Refresh.Value)

	p, err := svc.Authenticate(s.Access.Value)
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{UserID: u.ID, Role: model.RoleUser}, p)

	_, err = svc.Authenticate(s.Refresh.Value)
	assert.ErrorIs(t, err, ErrUnauthorized, "refresh tokens are not access tokens")

	me, err := svc.Me(auth.WithPrincipal(ctx, p))
	require.NoError(t, err)
	assert.Equal(t, "planner", me.Username)
}

func TestAuthService_LoginRejections(t *testing.T) {
	store, svc, users := newAuthFixture(t, 10)
	ctx := context.Background()

	u, err := users.Create(ctx, model.UserInput{Username: "planner", Email: "p@bs.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginInput{Username: "planner", Password: "wrong-pass"}, "ip")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, model.LoginInput{Username: "nobody", Password: "s3cret-pass"}, "ip")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, model.LoginInput{Username: "planner"}, "ip")
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, store.DeactivateUser(ctx, u.ID))
	_, err = svc.Login(ctx, model.LoginInput{Username: "planner", Password: "s3cret-pass"}, "ip")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserService_CreateRejectsLongPassword(t *testing.T) {
	_, _, users := newAuthFixture(t, 10)

	_, err := users.Create(context.Background(), model.UserInput{
		Username: "planner", Email: "p@bs.example", Password: strings.Repeat("x", 80),
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestAuthService_LoginUnknownUserComparesHash(t *testing.T) {
	_, svc, users := newAuthFixture(t, 10)
	ctx := context.Background()

	_, err := users.Create(ctx, model.UserInput{Username: "planner", Email: "p@bs.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	var hashes []string
	svc.checkPassword = func(hash, password string) error {
		hashes = append(hashes, hash)
		return auth.CheckPassword(hash, password)
	}

	_, err = svc.Login(ctx, model.LoginInput{Username: "nobody", Password: "s3cret-pass"}, "ip")
	assert.ErrorIs(t, err, ErrUnauthorized)
	require.Len(t, hashes, 1, "unknown users must still run a bcrypt compare")
	assert.Equal(t, auth.DummyHash(), hashes[0])

	_, err = svc.Login(ctx, model.LoginInput{Username: "planner", Password: "wrong-pass"}, "ip")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, hashes, 2)
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	_, svc, _ := newAuthFixture(t, 2)
	ctx := context.Background()
	in := model.LoginInput{Username: "ghost", Password: "whatever"}

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, in, "10.0.0.9")
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	_, err := svc.Login(ctx, in, "10.0.0.9")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = svc.Login(ctx, in, "10.0.0.10")
	assert.ErrorIs(t, err, ErrUnauthorized, "other clients keep their own budget")
}

func TestAuthService_Refresh(t *testing.T) {
	store, svc, users := newAuthFixture(t, 10)
	ctx := context.Background()

	u, err := users.Create(ctx, model.UserInput{Username: "planner", Email: "p@bs.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	s, err := svc.Login(ctx, model.LoginInput{Username: "planner", Password: "s3cret-pass"}, "ip")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, s.Refresh.Value)
	require.NoError(t, err)
	assert.NotEqual(t, s.Refresh.ID, next.Refresh.ID)

	_, err = svc.Refresh(ctx, s.Access.Value)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, store.DeactivateUser(ctx, u.ID))
	_, err = svc.Refresh(ctx, next.Refresh.Value)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NoError(t, svc.Logout(ctx, next.Refresh.Value))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestUserService_SelfProtection(t *testing.T) {
	_, _, users := newAuthFixture(t, 10)
	ctx := context.Background()

	admin, err := users.Create(ctx, model.UserInput{Username: "root", Email: "root@bs.example", Password: "s3cret-pass", Role: model.RoleAdmin})
	require.NoError(t, err)
	asAdmin := auth.WithPrincipal(ctx, auth.Principal{UserID: admin.ID, Role: model.RoleAdmin})

	err = users.Delete(asAdmin, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = users.Update(asAdmin, admin.ID, model.UserInput{Username: "root", Email: "root@bs.example", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := users.Update(asAdmin, admin.ID, model.UserInput{Username: "root", Email: "ops@bs.example", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "ops@bs.example", updated.Email)
	assert.Equal(t, admin.PasswordHash, updated.PasswordHash, "empty password keeps the old hash")
}

func TestUserService_EnsureAdmin(t *testing.T) {
	store, _, users := newAuthFixture(t, 10)
	ctx := context.Background()

	require.NoError(t, users.EnsureAdmin(ctx, "", "", ""))
	assert.Empty(t, store.users)

	require.NoError(t, users.EnsureAdmin(ctx, "admin", "change-me-now", "admin@bs.example"))
	require.Len(t, store.users, 1)

	require.NoError(t, users.EnsureAdmin(ctx, "admin2", "change-me-now", "admin2@bs.example"))
	assert.Len(t, store.users, 1, "seeding is skipped once an admin exists")
}
