package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/blr-world/hub-backend/domain"
)

// Claims is the token payload issued to authenticated callers. The role is
// the identity provider's role claim, not the profile's stored field.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies hub access tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token for the identity, embedding its role claim.
func (i *Issuer) Issue(identity *domain.Identity) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", domain.ErrInvalidPayload
	}
	now := time.Now()
	claims := Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   string(identity.RoleClaim),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies the signature and expiry and returns the claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "invalid token", err)
	}
	return claims, nil
}
