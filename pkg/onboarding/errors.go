// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import "errors"

var (
	// ErrNotFound covers unknown, expired and already-consumed session tokens.
	ErrNotFound = errors.New("onboarding session not found")
	// ErrInvalidTransition is returned when the requested step is not the
	// immediate successor of the session's current step, including the case
	// where a concurrent advance won the race.
	ErrInvalidTransition = errors.New("invalid onboarding step transition")
	// ErrValidation is returned for malformed or incomplete step payloads.
	ErrValidation = errors.New("invalid onboarding payload")
	// ErrConflict is returned when the slug collision retry is exhausted.
	ErrConflict = errors.New("organization slug conflict")
)
