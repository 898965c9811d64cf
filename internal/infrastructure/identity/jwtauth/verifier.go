package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

// Verifier checks HS256 bearer tokens issued by the account service.
type Verifier struct {
	secret []byte
	issuer string
	logger *logging.Logger
	now    func() time.Time
}

type accessClaims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

func NewVerifier(secret, issuer string, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Default()
	}

	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		logger: logger,
		now:    time.Now,
	}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (usecase.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return usecase.Actor{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if len(v.secret) == 0 {
		return usecase.Actor{}, fmt.Errorf("%w: token verifier is not configured", usecase.ErrDependencyUnavailable)
	}

	var claims accessClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		v.logger.WarnContext(ctx, "access token rejected", "error", err)
		return usecase.Actor{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}

	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return usecase.Actor{}, fmt.Errorf("%w: unexpected token issuer", usecase.ErrUnauthorized)
	}
	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(v.now(), true) {
		return usecase.Actor{}, fmt.Errorf("%w: access token expired", usecase.ErrUnauthorized)
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		userID = strings.TrimSpace(claims.Subject)
	}
	if userID == "" {
		return usecase.Actor{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return usecase.Actor{UserID: userID}, nil
}

// Issue signs a token for userID. Used by tests and local tooling; production
// tokens come from the account service.
func Issue(secret, issuer, userID string, ttl time.Duration, now time.Time) (string, error) {
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
