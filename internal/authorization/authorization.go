// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"
	"slices"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/openfga"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, user string, relation string, object string, contextualTuples ...openfga.Tuple) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	return a.client.Check(ctx, user, relation, object, contextualTuples...)
}

func (a *Authorizer) ListObjects(ctx context.Context, user string, relation string, objectType string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ListObjects")
	defer span.End()

	return a.client.ListObjects(ctx, user, relation, objectType)
}

func (a *Authorizer) FilterObjects(ctx context.Context, user string, relation string, objectType string, objs []string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.FilterObjects")
	defer span.End()

	allowedObjs, err := a.ListObjects(ctx, user, relation, objectType)
	if err != nil {
		return nil, err
	}

	var ret []string
	for _, obj := range allowedObjs {
		if slices.Contains(objs, obj) {
			ret = append(ret, obj)
		}
	}
	return ret, nil
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	v0AuthzModel := NewAuthorizationModelProvider("v0")
	model := *v0AuthzModel.GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) AssignOrganizationOwner(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignOrganizationOwner")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), OWNER_RELATION, OrganizationTuple(organizationId))
}

func (a *Authorizer) AssignOrganizationAdmin(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignOrganizationAdmin")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), ADMIN_RELATION, OrganizationTuple(organizationId))
}

func (a *Authorizer) AssignOrganizationMember(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignOrganizationMember")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), MEMBER_RELATION, OrganizationTuple(organizationId))
}

func (a *Authorizer) RemoveOrganizationOwner(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveOrganizationOwner")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userId), OWNER_RELATION, OrganizationTuple(organizationId))
}

func (a *Authorizer) RemoveOrganizationAdmin(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveOrganizationAdmin")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userId), ADMIN_RELATION, OrganizationTuple(organizationId))
}

func (a *Authorizer) RemoveOrganizationMember(ctx context.Context, organizationId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveOrganizationMember")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userId), MEMBER_RELATION, OrganizationTuple(organizationId))
}

// AssignRole writes the tuple matching the given role. The switch is
// exhaustive over the closed role set so an unmapped role is a hard error.
func (a *Authorizer) AssignRole(ctx context.Context, organizationId, userId string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignRole")
	defer span.End()

	switch role {
	case types.RoleOwner:
		return a.AssignOrganizationOwner(ctx, organizationId, userId)
	case types.RoleAdmin:
		return a.AssignOrganizationAdmin(ctx, organizationId, userId)
	case types.RoleMember:
		return a.AssignOrganizationMember(ctx, organizationId, userId)
	default:
		return fmt.Errorf("unknown role %q", role)
	}
}

func (a *Authorizer) RemoveRole(ctx context.Context, organizationId, userId string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveRole")
	defer span.End()

	switch role {
	case types.RoleOwner:
		return a.RemoveOrganizationOwner(ctx, organizationId, userId)
	case types.RoleAdmin:
		return a.RemoveOrganizationAdmin(ctx, organizationId, userId)
	case types.RoleMember:
		return a.RemoveOrganizationMember(ctx, organizationId, userId)
	default:
		return fmt.Errorf("unknown role %q", role)
	}
}

func (a *Authorizer) CheckOrganizationAccess(ctx context.Context, organizationId, userId, relation string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckOrganizationAccess")
	defer span.End()

	return a.Check(ctx, UserTuple(userId), relation, OrganizationTuple(organizationId))
}

// DeleteOrganization removes every tuple pointing at the organization,
// following continuation tokens until the read comes back empty.
func (a *Authorizer) DeleteOrganization(ctx context.Context, organizationId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.DeleteOrganization")
	defer span.End()

	cToken := ""
	for {
		r, err := a.client.ReadTuples(ctx, "", "", OrganizationTuple(organizationId), cToken)
		if err != nil {
			a.logger.Errorf("error when retrieving tuples: %s", err)
			return err
		}
		if len(r.Tuples) == 0 {
			break
		}
		ts := make([]openfga.Tuple, len(r.Tuples))
		for i, t := range r.Tuples {
			ts[i] = *openfga.NewTuple(t.Key.User, t.Key.Relation, t.Key.Object)
		}
		if err := a.client.DeleteTuples(ctx, ts...); err != nil {
			a.logger.Errorf("error when deleting tuples %v: %s", ts, err)
			return err
		}
		if r.ContinuationToken == "" {
			break
		}
		cToken = r.ContinuationToken
	}
	return nil
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
