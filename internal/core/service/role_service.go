package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verseyou/verse-api/internal/api/metrics"
	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

// RoleService implements the administrative role registry operations.
// Assigning a role mutates the stored identity only; tokens already in the
// wild keep the role snapshot they were issued with until they expire.
type RoleService struct {
	roles      ports.RoleRepository
	identities ports.IdentityRepository
	audit      ports.AuditRecorder
	log        zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, identities ports.IdentityRepository, audit ports.AuditRecorder, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, identities: identities, audit: audit, log: log}
}

// CreateRole registers a new role name. Names are case-normalized; an empty
// result after normalization is rejected, duplicates surface as
// ErrDuplicateRole via the registry's uniqueness constraint.
func (s *RoleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = domain.NormalizeRole(name)
	if name == "" {
		return nil, domain.ErrInvalidRole
	}

	role := &domain.Role{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.roles.Insert(ctx, role)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRole) {
			return nil, domain.ErrDuplicateRole
		}
		s.log.Error().Err(err).Str("role", name).Msg("role insert failed")
		return nil, domain.ErrStoreUnavailable
	}

	s.record(domain.AuditRecord{Action: domain.AuditRoleCreated, Subject: name, Outcome: "ok", At: created.CreatedAt})
	return created, nil
}

// AssignRole adds roleName to the identity's role set. The role must exist in
// the registry and the identity must resolve; the updated identity is
// returned. Assigning an already-held role is a no-op success.
func (s *RoleService) AssignRole(ctx context.Context, identityID, roleName string) (*domain.Identity, error) {
	roleName = domain.NormalizeRole(roleName)
	if roleName == "" {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.roles.FindByName(ctx, roleName); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		s.log.Error().Err(err).Str("role", roleName).Msg("role lookup failed")
		return nil, domain.ErrStoreUnavailable
	}

	identity, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		s.log.Error().Err(err).Str("identity_id", identityID).Msg("identity lookup failed")
		return nil, domain.ErrStoreUnavailable
	}

	if identity.HasRole(roleName) {
		return identity, nil
	}

	roles := domain.NormalizeRoles(append(identity.Roles, roleName))
	if err := s.identities.UpdateRoles(ctx, identity.ID, roles); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		s.log.Error().Err(err).Str("identity_id", identityID).Msg("role update failed")
		return nil, domain.ErrStoreUnavailable
	}
	identity.Roles = roles
	identity.UpdatedAt = time.Now().UTC()

	s.record(domain.AuditRecord{
		Actor:   identity.ID,
		Action:  domain.AuditRoleAssigned,
		Subject: roleName,
		Outcome: "ok",
		At:      identity.UpdatedAt,
	})
	metrics.RoleAssignmentsTotal.WithLabelValues(roleName).Inc()
	return identity, nil
}

// ListRoles returns the registry contents.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("role list failed")
		return nil, domain.ErrStoreUnavailable
	}
	return roles, nil
}

func (s *RoleService) record(r domain.AuditRecord) {
	if s.audit != nil {
		s.audit.Record(r)
	}
}
