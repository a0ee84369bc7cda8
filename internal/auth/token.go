package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identifies a signed-in user. The token id (jti) is what sign-out revokes.
type Claims struct {
	jwt.RegisteredClaims
}

type Token struct {
	Value     string
	ID        string
	UserID    string
	ExpiresAt time.Time
}

type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *Issuer) Issue(userID string) (*Token, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	tokenID := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{Value: signed, ID: tokenID, UserID: userID, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature, issuer and expiry of a token. Any failure
// is reported as apperrors.ErrUnauthorized.
func (i *Issuer) Parse(value string) (*Token, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apperrors.ErrUnauthorized)
		}

		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}

	return &Token{
		Value:     value,
		ID:        claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
