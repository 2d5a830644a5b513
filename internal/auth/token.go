package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// DefaultTTL applies when no token lifetime is configured.
const DefaultTTL = 60 * time.Minute

var (
	// ErrNoSigningKey means the process has no key material configured.
	// Fatal at startup, never a per-request condition.
	ErrNoSigningKey = errors.New("no signing key configured")

	ErrTokenMalformed   = errors.New("token is malformed")
	ErrBadSignature     = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrWrongAudience    = errors.New("token issuer or audience mismatch")
)

// Claims is the verified payload of an access token: the identity id as
// subject plus the role snapshot taken at issuance.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// IdentityID returns the token subject.
func (c *Claims) IdentityID() string { return c.Subject }

// Issuer mints signed, time-bounded access tokens. The key is loaded once at
// startup and never mutated; rotation requires a restart.
type Issuer struct {
	key      []byte
	ttl      time.Duration
	issuer   string
	audience string
}

// NewIssuer validates the key material and returns an Issuer. A blank key is
// ErrNoSigningKey. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(key string, ttl time.Duration, issuer, audience string) (*Issuer, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNoSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{key: []byte(key), ttl: ttl, issuer: issuer, audience: audience}, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs an HS256 token for identityID carrying the given role snapshot.
// Validity runs from now to now+TTL. The result is self-contained: verifying
// it later needs only the key, not a session store.
func (i *Issuer) Issue(identityID string, roles []string, now time.Time) (string, time.Time, error) {
	if identityID == "" {
		return "", time.Time{}, fmt.Errorf("issue token: empty identity id")
	}
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Roles: domain.NormalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verifier validates presented tokens against the configured key, issuer and
// audience. Verification is a pure function of the token, the key, and the
// supplied clock value.
type Verifier struct {
	key      []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// NewVerifier returns a Verifier. Leeway is the tolerated clock skew when
// checking issued-at and not-before (default none); expiry is always exact.
func NewVerifier(key string, issuer, audience string, leeway time.Duration) (*Verifier, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNoSigningKey
	}
	if leeway < 0 {
		leeway = 0
	}
	return &Verifier{key: []byte(key), issuer: issuer, audience: audience, leeway: leeway}, nil
}

// Verify checks the presented token and returns its claims. Failures are
// reported in a fixed precedence: malformed, bad signature, expired, not yet
// valid, wrong issuer/audience.
func (v *Verifier) Verify(presented string, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(v.leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)

	token, err := parser.ParseWithClaims(presented, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, classifyTokenError(err, token, now)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	// Leeway tolerates clock skew on issued-at and not-before only. Expiry
	// stays exact: the parser widens its window by the leeway, so re-check
	// here against the raw exp.
	if pastExpiry(claims, now) {
		return nil, ErrTokenExpired
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrTokenMalformed
	}
	claims.Roles = domain.NormalizeRoles(claims.Roles)
	return claims, nil
}

// pastExpiry reports whether now has reached the token's exp. A token expires
// at the exact exp instant.
func pastExpiry(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}

// classifyTokenError maps golang-jwt parse errors onto the typed failures,
// applying the documented precedence when several validations failed at once.
// Expiry is rechecked without leeway so it keeps its place in the precedence
// even when the parser only reported a later failure.
func classifyTokenError(err error, token *jwt.Token, now time.Time) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	}
	if token != nil {
		if claims, ok := token.Claims.(*Claims); ok && pastExpiry(claims, now) {
			return ErrTokenExpired
		}
	}
	switch {
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrWrongAudience
	default:
		return ErrTokenMalformed
	}
}
