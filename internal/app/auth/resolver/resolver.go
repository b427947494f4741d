package resolver

import (
	"context"

	authjwt "github.com/Miraines/MoonyAndStarry/task-service/internal/app/auth/jwt"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
)

type TokenVerifier interface {
	Verify(kind model.TokenKind, raw string) (authjwt.Claims, error)
}

type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}

// Resolver turns a bearer token into the user it was issued for.
type Resolver struct {
	tokens TokenVerifier
	users  UserFinder
	clock  clock.Clock
}

func New(tokens TokenVerifier, users UserFinder, clk clock.Clock) *Resolver {
	return &Resolver{tokens: tokens, users: users, clock: clk}
}

// Resolve returns ErrUnauthorized for every authentication failure. Only a
// failing store surfaces as a different error.
func (r *Resolver) Resolve(ctx context.Context, kind model.TokenKind, raw string) (model.User, error) {
	claims, err := r.tokens.Verify(kind, raw)
	if err != nil {
		return model.User{}, customErrors.ErrUnauthorized
	}

	if !claims.ExpiresAt.Time.After(r.clock.Now()) {
		return model.User{}, customErrors.ErrUnauthorized
	}

	user, err := r.users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if customErrors.IsNotFound(err) {
			return model.User{}, customErrors.ErrUnauthorized
		}
		return model.User{}, err
	}

	return user, nil
}
