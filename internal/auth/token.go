// Package auth issues and verifies the HS256 access tokens accepted by the
// HTTP API. Users are managed elsewhere; a token only carries the user ID
// and role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Issue signs a token for userID that expires after ttl.
func Issue(secret []byte, userID uuid.UUID, role Role, ttl time.Duration) (string, error) {
	const op = "auth.Issue"

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return signed, nil
}

// Parse verifies raw and extracts the principal. Tokens without an
// expiry are rejected.
func Parse(secret []byte, raw string) (Principal, error) {
	const op = "auth.Parse"

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Principal{}, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Principal{}, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, fmt.Errorf("%s: subject is not a user id:%w", op, ErrInvalidToken)
	}

	role, _ := claims["role"].(string)
	switch Role(role) {
	case RoleUser, RoleAdmin:
	default:
		return Principal{}, fmt.Errorf("%s: unknown role %q:%w", op, role, ErrInvalidToken)
	}

	return Principal{UserID: userID, Role: Role(role)}, nil
}
