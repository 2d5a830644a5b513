package auth

import (
	"errors"
	"testing"
	"time"
)

const testKey = "unit-test-signing-key"

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(testKey, time.Hour, "verseyou", "verseyou-app")
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return issuer
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	verifier, err := NewVerifier(testKey, "verseyou", "verseyou-app", 0)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return verifier
}

func TestNewIssuer_BlankKey(t *testing.T) {
	if _, err := NewIssuer("   ", time.Hour, "verseyou", "verseyou-app"); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("expected ErrNoSigningKey, got %v", err)
	}
	if _, err := NewVerifier("", "verseyou", "verseyou-app", 0); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("expected ErrNoSigningKey from verifier, got %v", err)
	}
}

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	issuer := newTestIssuer(t)
	verifier := newTestVerifier(t)
	now := time.Now().UTC()

	token, expiresAt, err := issuer.Issue("identity-1", []string{"User", "organiser"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if want := now.Add(time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiresAt)
	}

	claims, err := verifier.Verify(token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.IdentityID() != "identity-1" {
		t.Fatalf("unexpected subject: %q", claims.IdentityID())
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "user" || claims.Roles[1] != "organiser" {
		t.Fatalf("expected normalized role snapshot, got %v", claims.Roles)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	verifier := newTestVerifier(t)
	now := time.Now().UTC()

	token, expiresAt, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Exactly at expiry the token is already invalid.
	if _, err := verifier.Verify(token, expiresAt); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at expiry instant, got %v", err)
	}
	if _, err := verifier.Verify(token, expiresAt.Add(time.Minute)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after expiry, got %v", err)
	}

	// One second before expiry is still valid.
	if _, err := verifier.Verify(token, expiresAt.Add(-time.Second)); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}
}

func TestVerify_NotYetValid(t *testing.T) {
	issuer := newTestIssuer(t)
	verifier := newTestVerifier(t)
	now := time.Now().UTC()

	token, _, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token, now.Add(-time.Minute)); !errors.Is(err, ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestVerify_BadSignature(t *testing.T) {
	issuer := newTestIssuer(t)
	now := time.Now().UTC()

	token, _, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherVerifier, err := NewVerifier("a-different-key", "verseyou", "verseyou-app", 0)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	if _, err := otherVerifier.Verify(token, now); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerify_WrongAudience(t *testing.T) {
	issuer := newTestIssuer(t)
	now := time.Now().UTC()

	token, _, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := map[string]*Verifier{}
	v, err := NewVerifier(testKey, "verseyou", "some-other-app", 0)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	cases["audience"] = v
	v, err = NewVerifier(testKey, "someone-else", "verseyou-app", 0)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	cases["issuer"] = v

	for name, verifier := range cases {
		if _, err := verifier.Verify(token, now); !errors.Is(err, ErrWrongAudience) {
			t.Fatalf("%s mismatch: expected ErrWrongAudience, got %v", name, err)
		}
	}
}

func TestVerify_Malformed(t *testing.T) {
	verifier := newTestVerifier(t)
	now := time.Now().UTC()

	for _, presented := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := verifier.Verify(presented, now); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("presented %q: expected ErrTokenMalformed, got %v", presented, err)
		}
	}
}

func TestVerify_ExpiredWinsOverAudience(t *testing.T) {
	issuer, err := NewIssuer(testKey, time.Hour, "someone-else", "some-other-app")
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	verifier := newTestVerifier(t)
	now := time.Now().UTC()

	token, _, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Expired and wrong audience at once: expiry is reported first.
	if _, err := verifier.Verify(token, now.Add(2*time.Hour)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired to take precedence, got %v", err)
	}
}

func TestVerify_LeewayScopedToClockSkew(t *testing.T) {
	issuer := newTestIssuer(t)
	verifier, err := NewVerifier(testKey, "verseyou", "verseyou-app", 2*time.Minute)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	now := time.Now().UTC()

	token, expiresAt, err := issuer.Issue("identity-1", []string{"user"}, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Issued-at tolerates the configured skew.
	if _, err := verifier.Verify(token, now.Add(-time.Minute)); err != nil {
		t.Fatalf("expected token within leeway to verify, got %v", err)
	}
	if _, err := verifier.Verify(token, now.Add(-3*time.Minute)); !errors.Is(err, ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid beyond leeway, got %v", err)
	}

	// Expiry does not: the token dies at exp regardless of leeway.
	if _, err := verifier.Verify(token, expiresAt); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at expiry instant, got %v", err)
	}
	if _, err := verifier.Verify(token, expiresAt.Add(time.Minute)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired within leeway window, got %v", err)
	}
}

func TestIssue_EmptyIdentity(t *testing.T) {
	issuer := newTestIssuer(t)

	if _, _, err := issuer.Issue("", []string{"user"}, time.Now().UTC()); err == nil {
		t.Fatalf("expected error for empty identity id")
	}
}
