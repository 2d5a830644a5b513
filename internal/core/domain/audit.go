package domain

import "time"

// Audit actions recorded by the authentication and role workflows.
const (
	AuditSignUp       = "signup"
	AuditSignIn       = "signin"
	AuditSignInFailed = "signin_failed"
	AuditRoleCreated  = "role_created"
	AuditRoleAssigned = "role_assigned"
)

// AuditRecord is an append-only trace of a security-relevant action.
// Actor is the identity id (or the attempted email for failed sign-ins),
// Subject is whatever the action operated on.
type AuditRecord struct {
	ID      string    `json:"id"`
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Subject string    `json:"subject,omitempty"`
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}
