// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		input       string
		expected    Role
		expectedErr bool
	}{
		{"owner", RoleOwner, false},
		{"admin", RoleAdmin, false},
		{"member", RoleMember, false},
		{"superuser", 0, true},
		{"", 0, true},
		{"Owner", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, role)
			}
		})
	}
}

func TestRolePermissions(t *testing.T) {
	if !RoleOwner.Can(PermissionDelete) {
		t.Error("owner should be able to delete")
	}
	if RoleAdmin.Can(PermissionDelete) {
		t.Error("admin should not be able to delete")
	}
	if RoleMember.Can(PermissionEdit) {
		t.Error("member should not be able to edit")
	}
	if !RoleMember.Can(PermissionView) {
		t.Error("member should be able to view")
	}
}
