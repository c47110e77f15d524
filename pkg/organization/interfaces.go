// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"

	"github.com/canonical/platform-service/internal/types"
)

type ServiceInterface interface {
	ListMyOrganizations(ctx context.Context, userID string) ([]*types.Organization, error)
	GetOrganization(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]*types.OrganizationUser, error)
	InviteMember(ctx context.Context, organizationID, email string, role types.Role) (*Invitation, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) (*types.OrganizationUser, error)
	RemoveMember(ctx context.Context, organizationID, userID string) error

	CreateOrganization(ctx context.Context, name, slug string) (*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) (*types.Organization, error)
	SetOrganizationStatus(ctx context.Context, id string, enabled bool) error
	DeleteOrganization(ctx context.Context, id string) error
	ProvisionUser(ctx context.Context, organizationID, email string, role types.Role) error
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListUserOrganizations(ctx context.Context, userID string) ([]*types.Organization, error)
}

type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) error
	SetOrganizationStatus(ctx context.Context, id string, enabled bool) error
	DeleteOrganization(ctx context.Context, id string) error

	AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, organizationID, userID string) error
	ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error)
}

type AuthzInterface interface {
	AssignRole(ctx context.Context, organizationID, userID string, role types.Role) error
	RemoveRole(ctx context.Context, organizationID, userID string, role types.Role) error
	DeleteOrganization(ctx context.Context, organizationID string) error
}

type IdentityClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	GetIdentity(ctx context.Context, id string) (*types.User, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

type EventsInterface interface {
	Publish(ctx context.Context, subject string, event any) error
}
