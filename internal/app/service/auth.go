package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
	"github.com/go-playground/validator/v10"
)

type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, digest string) bool
}

type TokenIssuer interface {
	Issue(kind model.TokenKind, subject string) (model.Token, error)
}

type AuthService interface {
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	// Refresh mints a new pair for a user already resolved from a refresh token.
	Refresh(context.Context, model.User) (model.TokenPair, error)
}

type authService struct {
	users  repo.UserRepo
	hasher PasswordHasher
	tokens TokenIssuer
	v      *validator.Validate
}

func NewAuthService(ur repo.UserRepo, h PasswordHasher, ti TokenIssuer, v *validator.Validate) AuthService {
	return &authService{users: ur, hasher: h, tokens: ti, v: v}
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := validate(a.v, in); err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.users.GetUserByUsername(ctx, in.Username)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, err
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issuePair(user.Username)
}

func (a *authService) Refresh(_ context.Context, user model.User) (model.TokenPair, error) {
	return a.issuePair(user.Username)
}

func (a *authService) issuePair(subject string) (model.TokenPair, error) {
	at, err := a.tokens.Issue(model.AccessToken, subject)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "issue access token")
	}
	rt, err := a.tokens.Issue(model.RefreshToken, subject)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "issue refresh token")
	}
	return model.TokenPair{AccessToken: at, RefreshToken: rt}, nil
}
