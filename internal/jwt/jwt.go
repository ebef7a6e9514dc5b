// Package jwt signs and decodes the console's session cookies and visitor passes.
package jwt

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"visitor-pass-console/internal/model"
)

var (
	ErrNonValidToken    = errors.New("token did not pass validation")
	ErrInvalidClaimType = errors.New("invalid claim type")
)

var tokenSignatureAlg = gojwt.SigningMethodHS256

// Signer holds the HMAC key shared by every token the console issues.
type Signer struct {
	secret []byte
}

// NewSigner uses secret as the signing key. An empty secret gets a random
// key, so tokens stop validating when the process restarts.
func NewSigner(secret string) *Signer {
	if secret != "" {
		return &Signer{secret: []byte(secret)}
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate signing key: " + err.Error())
	}
	slog.Warn("No secret configured, using an ephemeral signing key")
	return &Signer{secret: key}
}

// SessionClaim carries the operator snapshot taken at login.
type SessionClaim struct {
	Operator model.Operator `json:"operator"`
	gojwt.RegisteredClaims
}

// NewSessionClaim builds a claim for op. A zero ttl issues a token without expiry.
func NewSessionClaim(op model.Operator, ttl time.Duration) SessionClaim {
	return SessionClaim{
		Operator:         op.Redacted(),
		RegisteredClaims: newRegisteredClaim(op.ID, ttl),
	}
}

// PassClaim is the content of a visitor pass.
type PassClaim struct {
	VisitorID   string `json:"visitor_id"`
	FullName    string `json:"name"`
	CardNumber  string `json:"card"`
	Destination string `json:"destination,omitempty"`
	VisitDate   string `json:"visit_date"`
	VisitTime   string `json:"visit_time"`
	gojwt.RegisteredClaims
}

func NewPassClaim(v model.Visitor, ttl time.Duration) PassClaim {
	return PassClaim{
		VisitorID:        v.ID,
		FullName:         v.FullName,
		CardNumber:       v.CardNumber,
		Destination:      v.Destination,
		VisitDate:        v.VisitDate,
		VisitTime:        v.VisitTime,
		RegisteredClaims: newRegisteredClaim(v.ID, ttl),
	}
}

func newRegisteredClaim(subject string, ttl time.Duration) gojwt.RegisteredClaims {
	now := time.Now().UTC()
	claims := gojwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  subject,
		IssuedAt: gojwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	return claims
}

// Sign produces a compact HS256 token.
func (s *Signer) Sign(claims gojwt.Claims) (string, error) {
	token := gojwt.NewWithClaims(tokenSignatureAlg, claims)
	return token.SignedString(s.secret)
}

func (s *Signer) DecodeSession(tokenString string) (*SessionClaim, error) {
	return decodeJWT(s, tokenString, &SessionClaim{})
}

func (s *Signer) DecodePass(tokenString string) (*PassClaim, error) {
	return decodeJWT(s, tokenString, &PassClaim{})
}

func decodeJWT[T gojwt.Claims](s *Signer, tokenString string, claimsType T) (T, error) {
	var zero T

	parsedToken, err := gojwt.ParseWithClaims(tokenString, claimsType, func(token *gojwt.Token) (interface{}, error) {
		return s.secret, nil
	}, gojwt.WithValidMethods([]string{tokenSignatureAlg.Alg()}))

	if err != nil {
		return zero, err
	} else if parsedToken == nil || !parsedToken.Valid {
		return zero, ErrNonValidToken
	} else if claims, ok := parsedToken.Claims.(T); ok {
		return claims, nil
	}

	return zero, ErrInvalidClaimType
}
