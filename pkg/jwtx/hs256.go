package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can turn claims into a signed token string.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrInvalidKey  = errors.New("jwtx: signing secret too short")
)

// MinSecretLen is the minimum accepted HMAC secret length in bytes. Anything
// shorter than the digest size weakens HS256 below its design strength.
const MinSecretLen = 32

// HS256 signs and verifies tokens with a single server-held HMAC secret.
// It implements both Signer and Verifier; the secret is read-only after
// construction so a single instance is safe for concurrent use.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewHS256 builds an HS256 token service. The secret must be at least
// MinSecretLen bytes; ttl <= 0 falls back to DefaultTokenTTL.
func NewHS256(secret []byte, issuer string, ttl time.Duration) (*HS256, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrInvalidKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	// Copy so the caller can't mutate our key out from under us.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{secret: key, issuer: issuer, ttl: ttl}, nil
}

// Issue builds claims for the given identity and signs them. This is the
// normal entry point; Sign exists for callers that need custom claims.
func (s *HS256) Issue(subject, email, role string) (string, error) {
	return s.Sign(NewClaims(subject, email, role, s.issuer, s.ttl, time.Now().UTC()))
}

// Sign takes claims and turns them into a signed compact JWT string.
func (s *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates the token string and returns its parsed claims. Signature
// and expiry failures come back as the package sentinels so callers can log
// the exact cause while still collapsing everything to a single
// "unauthenticated" outcome at the client boundary.
func (s *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
