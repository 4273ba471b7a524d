package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/pkg/apperror"
)

type Claims struct {
	Role entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves.
type Identity struct {
	ID   uuid.UUID
	Role entity.Role
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for both minting and verification.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Mint(id uuid.UUID, role entity.Role) (string, time.Time, error) {
	if id == uuid.Nil {
		return "", time.Time{}, errors.New("cannot mint token for empty id")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("cannot mint token for role %q", role)
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns apperror.ErrTokenExpired or apperror.ErrTokenMalformed on failure.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired
		}
		return nil, apperror.ErrTokenMalformed
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrTokenMalformed
	}
	if !claims.Role.Valid() {
		return nil, apperror.ErrTokenMalformed
	}

	return &Identity{ID: id, Role: claims.Role}, nil
}
