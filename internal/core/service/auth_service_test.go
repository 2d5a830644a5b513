package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/verseyou/verse-api/internal/auth"
	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

type stubIdentityRepo struct {
	mu         sync.Mutex
	byEmail    map[string]*domain.Identity
	insertErr  error
	lookupErr  error
	updateRole error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byEmail: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Roles = append([]string(nil), i.Roles...)
	return &clone
}

func (r *stubIdentityRepo) Insert(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if _, exists := r.byEmail[identity.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	r.byEmail[identity.Email] = cloneIdentity(identity)
	return cloneIdentity(identity), nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if identity, ok := r.byEmail[email]; ok {
		return cloneIdentity(identity), nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, identity := range r.byEmail {
		if identity.ID == id {
			return cloneIdentity(identity), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) UpdateRoles(_ context.Context, id string, roles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateRole != nil {
		return r.updateRole
	}
	for _, identity := range r.byEmail {
		if identity.ID == id {
			identity.Roles = append([]string(nil), roles...)
			return nil
		}
	}
	return domain.ErrIdentityNotFound
}

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) FindByIdentity(_ context.Context, identityID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[identityID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) Insert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.IdentityID]; exists {
		return nil, domain.ErrProfileExists
	}
	clone := *profile
	r.profiles[profile.IdentityID] = &clone
	return profile, nil
}

func (r *stubProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.IdentityID]; !ok {
		return domain.ErrProfileNotFound
	}
	clone := *profile
	r.profiles[profile.IdentityID] = &clone
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[identityID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, identityID)
	return nil
}

type stubThrottle struct {
	mu       sync.Mutex
	failures map[string]int
	limit    int
	allowErr error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Allow(_ context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.allowErr != nil {
		return false, t.allowErr
	}
	return t.failures[email] < t.limit, nil
}

func (t *stubThrottle) MarkFailure(_ context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, email)
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	records []domain.AuditRecord
}

func (a *recordingAudit) Record(record domain.AuditRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, record)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.records))
	for i, r := range a.records {
		out[i] = r.Action
	}
	return out
}

func newTestAuthService(t *testing.T, repo *stubIdentityRepo, throttle SignInThrottle, audit ports.AuditRecorder) *AuthService {
	t.Helper()
	issuer, err := auth.NewIssuer("test-key", time.Hour, "verseyou", "verseyou-app")
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return NewAuthService(repo, newStubProfileRepo(), auth.NewHasher(bcrypt.MinCost), issuer, throttle, audit, 6, zerolog.Nop())
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubIdentityRepo()
	audit := &recordingAudit{}
	svc := newTestAuthService(t, repo, nil, audit)

	identity, err := svc.SignUp(context.Background(), ports.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if identity.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", identity.Email)
	}
	if identity.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(identity.Roles) != 1 || identity.Roles[0] != domain.DefaultRole {
		t.Fatalf("expected default role only, got %v", identity.Roles)
	}
	if got := audit.actions(); len(got) != 1 || got[0] != domain.AuditSignUp {
		t.Fatalf("expected one signup audit record, got %v", got)
	}
}

func TestAuthService_SignUp_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(t, newStubIdentityRepo(), nil, nil)

	for _, email := range []string{"", "not-an-email", "a b@example.com", "x@"} {
		_, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: email, Password: "s3cret-pass"})
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestAuthService_SignUp_WeakPassword(t *testing.T) {
	svc := newTestAuthService(t, newStubIdentityRepo(), nil, nil)

	_, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@example.com", Password: "short"})
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := newTestAuthService(t, repo, nil, nil)

	in := ports.SignUpInput{Email: "bob@example.com", Password: "s3cret-pass"}
	if _, err := svc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("first SignUp failed: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), in); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubIdentityRepo()
	throttle := newStubThrottle(5)
	audit := &recordingAudit{}
	svc := newTestAuthService(t, repo, throttle, audit)

	identity, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "carol@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	result, err := svc.SignIn(context.Background(), "Carol@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if result.IdentityID != identity.ID {
		t.Fatalf("unexpected identity id: %q", result.IdentityID)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", result.ExpiresAt)
	}

	verifier, err := auth.NewVerifier("test-key", "verseyou", "verseyou-app", 0)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	claims, err := verifier.Verify(result.Token, time.Now().UTC())
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.IdentityID() != identity.ID {
		t.Fatalf("token subject mismatch: %q", claims.IdentityID())
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.DefaultRole {
		t.Fatalf("unexpected role snapshot: %v", claims.Roles)
	}
}

func TestAuthService_SignIn_IndistinguishableFailures(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := newTestAuthService(t, repo, nil, nil)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "dave@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	_, unknownErr := svc.SignIn(context.Background(), "nobody@example.com", "s3cret-pass")
	_, wrongErr := svc.SignIn(context.Background(), "dave@example.com", "wrong-pass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_SignIn_Throttled(t *testing.T) {
	repo := newStubIdentityRepo()
	throttle := newStubThrottle(3)
	svc := newTestAuthService(t, repo, throttle, nil)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "eve@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.SignIn(context.Background(), "eve@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Over the limit the correct password is refused too.
	if _, err := svc.SignIn(context.Background(), "eve@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_SignIn_ThrottleResetOnSuccess(t *testing.T) {
	repo := newStubIdentityRepo()
	throttle := newStubThrottle(3)
	svc := newTestAuthService(t, repo, throttle, nil)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "fay@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, _ = svc.SignIn(context.Background(), "fay@example.com", "wrong-pass")
	}
	if _, err := svc.SignIn(context.Background(), "fay@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("expected success under the limit, got %v", err)
	}

	throttle.mu.Lock()
	remaining := throttle.failures["fay@example.com"]
	throttle.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected failure counter reset, got %d", remaining)
	}
}

func TestAuthService_SignIn_ThrottleUnavailable(t *testing.T) {
	repo := newStubIdentityRepo()
	throttle := newStubThrottle(3)
	throttle.allowErr = errors.New("redis down")
	svc := newTestAuthService(t, repo, throttle, nil)

	if _, err := svc.SignIn(context.Background(), "gil@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected fail-closed ErrStoreUnavailable, got %v", err)
	}
}

func TestAuthService_SignIn_AuditTrail(t *testing.T) {
	repo := newStubIdentityRepo()
	audit := &recordingAudit{}
	svc := newTestAuthService(t, repo, nil, audit)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "hal@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	_, _ = svc.SignIn(context.Background(), "hal@example.com", "wrong-pass")
	if _, err := svc.SignIn(context.Background(), "hal@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	want := []string{domain.AuditSignUp, domain.AuditSignInFailed, domain.AuditSignIn}
	got := audit.actions()
	if len(got) != len(want) {
		t.Fatalf("expected %v audit actions, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit action %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
