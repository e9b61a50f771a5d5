package auth

import (
	"context"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
	Role   model.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
