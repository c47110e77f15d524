// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/platform-service/internal/openfga"
	"github.com/canonical/platform-service/internal/types"
)

type AuthorizerInterface interface {
	ListObjects(context.Context, string, string, string) ([]string, error)
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	FilterObjects(context.Context, string, string, string, []string) ([]string, error)
	ValidateModel(context.Context) error

	AssignOrganizationOwner(context.Context, string, string) error
	AssignOrganizationAdmin(context.Context, string, string) error
	AssignOrganizationMember(context.Context, string, string) error
	RemoveOrganizationOwner(context.Context, string, string) error
	RemoveOrganizationAdmin(context.Context, string, string) error
	RemoveOrganizationMember(context.Context, string, string) error
	// AssignRole and RemoveRole map a membership role onto its tuple.
	AssignRole(context.Context, string, string, types.Role) error
	RemoveRole(context.Context, string, string, types.Role) error

	DeleteOrganization(context.Context, string) error
	CheckOrganizationAccess(context.Context, string, string, string) (bool, error)
}

type AuthzClientInterface interface {
	ListObjects(context.Context, string, string, string) ([]string, error)
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	BatchCheck(context.Context, ...openfga.TupleWithContext) (bool, error)
	ReadModel(context.Context) (*fga.AuthorizationModel, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	ReadTuples(context.Context, string, string, string, string) (*client.ClientReadResponse, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuples(context.Context, ...openfga.Tuple) error
}
