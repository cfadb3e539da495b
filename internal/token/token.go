// Package token issues and verifies the signed session tokens that carry a
// user's identity and location across requests. Tokens are stateless: the
// service is a pure function of the configured secret, the claims and the
// clock — there is no server-side revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed token lifetime: 1 day from issuance.
const TTL = 24 * time.Hour

var (
	// ErrMalformed — the token cannot be parsed at all.
	ErrMalformed = errors.New("token malformado")
	// ErrExpired — the token parsed fine but is past its expiration.
	ErrExpired = errors.New("token expirado")
	// ErrInvalidSignature — the signature does not match the configured secret.
	ErrInvalidSignature = errors.New("firma de token invalida")
)

// Claims is the identity claim set embedded in every session token.
// JSON keys match the mobile client's expectations.
type Claims struct {
	UserID     uint   `json:"userId"`
	Username   string `json:"username"`
	LocationID uint   `json:"locationId"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a process-wide HMAC secret
// loaded once at startup. No rotation mechanism.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token embedding the claim set with an absolute expiration
// one day out.
func (i *Issuer) Issue(userID uint, username string, locationID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Username:   username,
		LocationID: locationID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parses and validates a signed token, returning its claims or one
// of the typed failures above.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	switch {
	case err == nil && tok.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return nil, ErrInvalidSignature
	default:
		return nil, ErrMalformed
	}
}
