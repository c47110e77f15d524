// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package organization manages organizations and their memberships once
// onboarding has created them: member invitations and role changes on the
// tenant surface, full lifecycle management on the admin surface.
package organization

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/canonical/platform-service/internal/events"
	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/storage"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const maxSlugLength = 50

// Invitation is the provisioning handle returned to the inviter: a recovery
// link and code the invitee uses to set their credentials.
type Invitation struct {
	UserID string `json:"user_id"`
	Link   string `json:"link"`
	Code   string `json:"code"`
}

type Service struct {
	storage            StorageInterface
	authz              AuthzInterface
	identity           IdentityClientInterface
	events             EventsInterface
	invitationLifetime string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	store StorageInterface,
	authz AuthzInterface,
	identity IdentityClientInterface,
	publisher EventsInterface,
	invitationLifetime string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:            store,
		authz:              authz,
		identity:           identity,
		events:             publisher,
		invitationLifetime: invitationLifetime,
		tracer:             tracer,
		monitor:            monitor,
		logger:             logger,
	}
}

func (s *Service) ListMyOrganizations(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListMyOrganizations")
	defer span.End()

	return s.storage.ListOrganizationsByUserID(ctx, userID)
}

func (s *Service) GetOrganization(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.GetOrganization")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return org, nil
}

func (s *Service) ListOrganizationUsers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListOrganizationUsers")
	defer span.End()

	members, err := s.storage.ListMembersByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	users := make([]*types.OrganizationUser, 0, len(members))
	for _, m := range members {
		users = append(users, &types.OrganizationUser{
			UserID: m.UserID,
			Email:  s.lookupEmail(ctx, m.UserID),
			Role:   m.Role,
		})
	}

	return users, nil
}

// InviteMember provisions an identity for the email if none exists, adds the
// membership, mirrors the role tuple and returns a recovery link the invitee
// uses to set credentials. Inviting an existing member re-issues the link.
func (s *Service) InviteMember(ctx context.Context, organizationID, email string, role types.Role) (*Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.InviteMember")
	defer span.End()

	identityID, err := s.identity.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		s.logger.Errorf("failed to look up identity for %s: %v", email, err)
		return nil, fmt.Errorf("failed to check identity")
	}

	if identityID == "" {
		s.logger.Infof("creating new identity for %s", email)
		identityID, err = s.identity.CreateIdentity(ctx, email)
		if err != nil {
			s.logger.Errorf("failed to create identity: %v", err)
			return nil, fmt.Errorf("failed to provision user")
		}
	}

	newMember := true
	if _, err := s.storage.AddMember(ctx, organizationID, identityID, role); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
		// Already a member; the invitation becomes a credential reset.
		newMember = false
	}

	if newMember {
		if err := s.authz.AssignRole(ctx, organizationID, identityID, role); err != nil {
			s.logger.Errorf("failed to assign %s tuple for %s: %v", role, identityID, err)
		}

		if err := s.events.Publish(ctx, events.SubjectMemberAdded, events.MemberEvent{
			OrganizationID: organizationID,
			UserID:         identityID,
			Role:           role.String(),
		}); err != nil {
			s.logger.Errorf("failed to publish member added event: %v", err)
		}
	}

	link, code, err := s.identity.CreateRecoveryLink(ctx, identityID, s.invitationLifetime)
	if err != nil {
		s.logger.Errorf("failed to create recovery link: %v", err)
		return nil, fmt.Errorf("failed to generate invitation link")
	}

	return &Invitation{UserID: identityID, Link: link, Code: code}, nil
}

// UpdateMemberRole swaps the member's role, keeping the membership row and
// the authorization tuple in step. The new tuple is written before the old
// one is removed so the member never loses access mid-change.
func (s *Service) UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) (*types.OrganizationUser, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.UpdateMemberRole")
	defer span.End()

	current, err := s.findMember(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}

	if current.Role == role {
		return &types.OrganizationUser{
			UserID: userID,
			Email:  s.lookupEmail(ctx, userID),
			Role:   role,
		}, nil
	}

	if err := s.authz.AssignRole(ctx, organizationID, userID, role); err != nil {
		return nil, fmt.Errorf("failed to assign %s tuple: %w", role, err)
	}

	if err := s.storage.UpdateMemberRole(ctx, organizationID, userID, role); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	if err := s.authz.RemoveRole(ctx, organizationID, userID, current.Role); err != nil {
		s.logger.Errorf("failed to remove stale %s tuple for %s: %v", current.Role, userID, err)
	}

	return &types.OrganizationUser{
		UserID: userID,
		Email:  s.lookupEmail(ctx, userID),
		Role:   role,
	}, nil
}

func (s *Service) RemoveMember(ctx context.Context, organizationID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.RemoveMember")
	defer span.End()

	current, err := s.findMember(ctx, organizationID, userID)
	if err != nil {
		return err
	}

	if err := s.storage.RemoveMember(ctx, organizationID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := s.authz.RemoveRole(ctx, organizationID, userID, current.Role); err != nil {
		s.logger.Errorf("failed to remove %s tuple for %s: %v", current.Role, userID, err)
	}

	if err := s.events.Publish(ctx, events.SubjectMemberRemoved, events.MemberEvent{
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           current.Role.String(),
	}); err != nil {
		s.logger.Errorf("failed to publish member removed event: %v", err)
	}

	return nil
}

// CreateOrganization is the admin escape hatch; regular organizations are
// created by onboarding completion. The slug is caller-provided here.
func (s *Service) CreateOrganization(ctx context.Context, name, slug string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.CreateOrganization")
	defer span.End()

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase alphanumeric with hyphens, at most %d characters", ErrValidation, maxSlugLength)
	}

	created, err := s.storage.CreateOrganization(ctx, &types.Organization{
		Name:               name,
		Slug:               slug,
		SubscriptionStatus: "ACTIVE",
		Enabled:            true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: slug %q is taken", ErrConflict, slug)
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return created, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.UpdateOrganization")
	defer span.End()

	if err := s.storage.UpdateOrganization(ctx, o, paths); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	updated, err := s.storage.GetOrganizationByID(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated organization: %w", err)
	}

	return updated, nil
}

func (s *Service) SetOrganizationStatus(ctx context.Context, id string, enabled bool) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.SetOrganizationStatus")
	defer span.End()

	if err := s.storage.SetOrganizationStatus(ctx, id, enabled); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set organization status: %w", err)
	}

	return nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.DeleteOrganization")
	defer span.End()

	if err := s.storage.DeleteOrganization(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	// Tuples are cleaned up best-effort; the rows are already gone.
	if err := s.authz.DeleteOrganization(ctx, id); err != nil {
		s.logger.Errorf("failed to delete organization tuples: %v", err)
	}

	return nil
}

// ProvisionUser is the admin variant of InviteMember: no recovery link, and
// an existing membership is an error rather than a re-invite.
func (s *Service) ProvisionUser(ctx context.Context, organizationID, email string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ProvisionUser")
	defer span.End()

	identityID, err := s.identity.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	if identityID == "" {
		identityID, err = s.identity.CreateIdentity(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to create identity: %w", err)
		}
	}

	if _, err := s.storage.AddMember(ctx, organizationID, identityID, role); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return fmt.Errorf("%w: %s is already a member", ErrConflict, email)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	if err := s.authz.AssignRole(ctx, organizationID, identityID, role); err != nil {
		return fmt.Errorf("failed to assign role tuple: %w", err)
	}

	if err := s.events.Publish(ctx, events.SubjectMemberAdded, events.MemberEvent{
		OrganizationID: organizationID,
		UserID:         identityID,
		Role:           role.String(),
	}); err != nil {
		s.logger.Errorf("failed to publish member added event: %v", err)
	}

	return nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListOrganizations")
	defer span.End()

	return s.storage.ListOrganizations(ctx)
}

func (s *Service) ListUserOrganizations(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListUserOrganizations")
	defer span.End()

	return s.storage.ListOrganizationsByUserID(ctx, userID)
}

func (s *Service) findMember(ctx context.Context, organizationID, userID string) (*types.Membership, error) {
	members, err := s.storage.ListMembersByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	for _, m := range members {
		if m.UserID == userID {
			return m, nil
		}
	}

	return nil, ErrNotFound
}

// lookupEmail is best-effort; an identity deleted upstream but still present
// in our membership table reads as unknown.
func (s *Service) lookupEmail(ctx context.Context, userID string) string {
	user, err := s.identity.GetIdentity(ctx, userID)
	if err != nil {
		s.logger.Warnf("failed to get identity %s: %v", userID, err)
		return "unknown"
	}
	return user.Email
}
