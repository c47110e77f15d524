// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"database/sql/driver"
	"fmt"
)

// Role is a closed enum. Unknown role strings are rejected at the boundary
// instead of falling through a string-keyed lookup.
type Role int

const (
	RoleOwner Role = iota
	RoleAdmin
	RoleMember
)

type Permission string

const (
	PermissionView   Permission = "can_view"
	PermissionEdit   Permission = "can_edit"
	PermissionCreate Permission = "can_create"
	PermissionDelete Permission = "can_delete"
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Permissions is the exhaustive role to permission mapping.
func (r Role) Permissions() []Permission {
	switch r {
	case RoleOwner:
		return []Permission{PermissionView, PermissionEdit, PermissionCreate, PermissionDelete}
	case RoleAdmin:
		return []Permission{PermissionView, PermissionEdit, PermissionCreate}
	case RoleMember:
		return []Permission{PermissionView}
	}
	return nil
}

func (r Role) Can(p Permission) bool {
	for _, granted := range r.Permissions() {
		if granted == p {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "owner":
		return RoleOwner, nil
	case "admin":
		return RoleAdmin, nil
	case "member":
		return RoleMember, nil
	}
	return 0, fmt.Errorf("unknown role: %q", s)
}

// Value and Scan store roles as their string names.
func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	s, ok := src.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Role", src)
	}

	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}
