package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verseyou/verse-api/internal/api/metrics"
	"github.com/verseyou/verse-api/internal/auth"
	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

const defaultMinPasswordLen = 6

// dummyHash is a throwaway bcrypt digest compared against when the email is
// unknown, so the unknown-email and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SignInThrottle bounds repeated sign-in failures per email (Redis-backed in
// production). Allow must fail closed: a store error means deny.
type SignInThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	MarkFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements sign-up and sign-in. It owns the whole workflow:
// everything below it (hasher, issuer, repositories) is composed here and
// storage errors never escape unmapped.
type AuthService struct {
	identities  ports.IdentityRepository
	profiles    ports.ProfileRepository
	hasher      auth.Hasher
	issuer      *auth.Issuer
	throttle    SignInThrottle
	audit       ports.AuditRecorder
	minPassword int
	log         zerolog.Logger
}

// NewAuthService wires the authentication workflow. throttle and audit may be
// nil (disabled); minPassword <= 0 falls back to the default policy of 6.
func NewAuthService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	hasher auth.Hasher,
	issuer *auth.Issuer,
	throttle SignInThrottle,
	audit ports.AuditRecorder,
	minPassword int,
	log zerolog.Logger,
) *AuthService {
	if minPassword <= 0 {
		minPassword = defaultMinPasswordLen
	}
	return &AuthService{
		identities:  identities,
		profiles:    profiles,
		hasher:      hasher,
		issuer:      issuer,
		throttle:    throttle,
		audit:       audit,
		minPassword: minPassword,
		log:         log,
	}
}

// SignUp validates the input, hashes the password, and persists a new
// identity with the default role. Email uniqueness is enforced by the store's
// constraint, not a check-then-insert, so concurrent duplicates cannot both
// succeed. No token is issued; the client signs in explicitly afterwards.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.Identity, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(in.Password) < s.minPassword {
		return nil, domain.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{domain.DefaultRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.identities.Insert(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		s.log.Error().Err(err).Msg("identity insert failed")
		return nil, domain.ErrStoreUnavailable
	}

	// The initial profile carries the names from the sign-up form. Losing it
	// is survivable: the client can recreate it through the profile API.
	if s.profiles != nil && (in.FirstName != "" || in.LastName != "") {
		profile := &domain.Profile{
			ID:         uuid.NewString(),
			IdentityID: created.ID,
			FirstName:  strings.TrimSpace(in.FirstName),
			LastName:   strings.TrimSpace(in.LastName),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := s.profiles.Insert(ctx, profile); err != nil {
			s.log.Warn().Err(err).Str("identity_id", created.ID).Msg("initial profile insert failed")
		}
	}

	s.record(domain.AuditRecord{Actor: created.ID, Action: domain.AuditSignUp, Outcome: "ok", At: now})
	metrics.SignUpsTotal.Inc()
	return created, nil
}

// SignIn verifies the credentials and issues an access token carrying the
// identity's role snapshot. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthenticationResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, s.failSignIn(ctx, email, "empty_input")
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Error().Err(err).Msg("sign-in throttle unavailable")
			return nil, domain.ErrStoreUnavailable
		}
		if !allowed {
			metrics.SignInsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			// Burn the same hashing cost as the wrong-password path.
			_, _ = s.hasher.Verify(password, dummyHash)
			return nil, s.failSignIn(ctx, email, "unknown_email")
		}
		s.log.Error().Err(err).Msg("identity lookup failed")
		return nil, domain.ErrStoreUnavailable
	}

	ok, err := s.hasher.Verify(password, identity.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("identity_id", identity.ID).Msg("stored credential unreadable")
		return nil, s.failSignIn(ctx, email, "corrupt_credential")
	}
	if !ok {
		return nil, s.failSignIn(ctx, email, "wrong_password")
	}

	now := time.Now().UTC()
	token, expiresAt, err := s.issuer.Issue(identity.ID, identity.Roles, now)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("throttle reset failed")
		}
	}

	s.record(domain.AuditRecord{Actor: identity.ID, Action: domain.AuditSignIn, Outcome: "ok", At: now})
	metrics.SignInsTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.Inc()

	return &ports.AuthenticationResult{
		IdentityID: identity.ID,
		Token:      token,
		ExpiresAt:  expiresAt,
	}, nil
}

// failSignIn funnels every credential failure through one path so the
// response shape, audit trail, and throttle bookkeeping stay identical
// regardless of the underlying reason.
func (s *AuthService) failSignIn(ctx context.Context, email, reason string) error {
	if s.throttle != nil && email != "" {
		if err := s.throttle.MarkFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("throttle mark failed")
		}
	}
	s.record(domain.AuditRecord{
		Actor:   email,
		Action:  domain.AuditSignInFailed,
		Outcome: reason,
		At:      time.Now().UTC(),
	})
	metrics.SignInsTotal.WithLabelValues("denied").Inc()
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(r domain.AuditRecord) {
	if s.audit != nil {
		s.audit.Record(r)
	}
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", domain.ErrInvalidEmail
	}
	return raw, nil
}
