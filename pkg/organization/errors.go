// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import "errors"

var (
	// ErrNotFound covers missing organizations and missing members. It is
	// deliberately indistinguishable from an organization outside the
	// caller's tenant.
	ErrNotFound = errors.New("not found")
	// ErrValidation rejects malformed input at the service boundary.
	ErrValidation = errors.New("validation failed")
	// ErrConflict reports a slug already in use.
	ErrConflict = errors.New("conflict")
)
