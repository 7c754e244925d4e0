package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller resolved from an access token. Tokens
// are issued by the external identity provider; this service only verifies
// them against the shared secret.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

type JWT struct {
	secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{
		secret: []byte(secret),
	}
}

// ParseAccessToken verifies token and returns the identity it carries. The
// subject claim is the user id.
func (j *JWT) ParseAccessToken(token string) (*Identity, error) {
	claims := &accessClaims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("token subject is not a user id")
	}

	return &Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// NewAccessToken signs a token for identity. In production tokens come from
// the identity provider; this is used by tests and local tooling.
func (j *JWT) NewAccessToken(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &accessClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}
