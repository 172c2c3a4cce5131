package utils // package utils issues session tokens and hashes passwords

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by an admin session token. Subject is
// the admin id; ID (jti) identifies the session so logout can revoke it.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionToken is a signed token together with its expiry.
type SessionToken struct {
	Token string
	ID    string
	Exp   time.Time
}

const sessionIssuer = "mtp-admin"

// NewSessionToken signs an HS256 session token for an admin.
func NewSessionToken(secret, adminID, name, email string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	jti := uuid.NewString()
	claims := SessionClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   adminID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ID: jti, Exp: exp}, nil
}

// ErrInvalidSession covers malformed, expired and wrongly signed tokens.
var ErrInvalidSession = errors.New("invalid session token")

// ParseSessionToken verifies the signature, algorithm, issuer and expiry.
func ParseSessionToken(secret, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
