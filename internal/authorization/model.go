// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

var v0Schema = `model
  schema 1.1

type user

type organization
  relations
    define owner: [user]
    define admin: [user]
    define member: [user] or admin or owner
    define can_view: member
    define can_edit: admin or owner
    define can_create: admin or owner
    define can_delete: owner
`

type AuthorizationModelProvider struct {
	version string
}

func (p *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	var schema string

	switch p.version {
	case "v0":
		schema = v0Schema
	default:
		panic(fmt.Sprintf("unknown authorization model version %s", p.version))
	}

	parsed, err := transformer.TransformDSLToJSON(schema)
	if err != nil {
		panic(fmt.Sprintf("invalid authorization model schema: %s", err))
	}

	var model fga.AuthorizationModel
	if err := json.Unmarshal([]byte(parsed), &model); err != nil {
		panic(fmt.Sprintf("failed to unmarshal authorization model: %s", err))
	}

	return &model
}

func NewAuthorizationModelProvider(version string) *AuthorizationModelProvider {
	p := new(AuthorizationModelProvider)
	p.version = version

	return p
}
