package jwt

import (
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
)

const bearer = "Bearer"

// Claims is the payload of both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	TokenType model.TokenKind `json:"token_type"`
}

type kindSettings struct {
	key []byte
	ttl time.Duration
}

// TokenService issues and verifies HMAC signed tokens. It performs no I/O
// and is immutable after construction.
type TokenService struct {
	method jwt.SigningMethod
	kinds  map[model.TokenKind]kindSettings
	clock  clock.Clock
}

func NewTokenService(cfg *config.Config, clk clock.Clock) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.TokenAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, customErrors.NewInvalidArgument("unsupported token algorithm " + cfg.TokenAlgorithm)
	}

	return &TokenService{
		method: method,
		kinds: map[model.TokenKind]kindSettings{
			model.AccessToken:  {key: []byte(cfg.AccessTokenKey), ttl: cfg.AccessTokenTTL},
			model.RefreshToken: {key: []byte(cfg.RefreshTokenKey), ttl: cfg.RefreshTokenTTL},
		},
		clock: clk,
	}, nil
}

func (s *TokenService) Issue(kind model.TokenKind, subject string) (model.Token, error) {
	ks, ok := s.kinds[kind]
	if !ok {
		return model.Token{}, customErrors.NewInvalidArgument("unknown token kind " + string(kind))
	}

	now := s.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ks.ttl)),
		},
		TokenType: kind,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(ks.key)
	if err != nil {
		return model.Token{}, customErrors.WrapInternal(err, "sign "+string(kind)+" token")
	}

	return model.Token{
		Token:     signed,
		TokenType: bearer,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the signature and required claims of raw for kind.
// Expiry is left to the caller.
func (s *TokenService) Verify(kind model.TokenKind, raw string) (Claims, error) {
	ks, ok := s.kinds[kind]
	if !ok {
		return Claims{}, customErrors.ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return ks.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || claims.TokenType != kind {
		return Claims{}, customErrors.ErrInvalidToken
	}

	return claims, nil
}
