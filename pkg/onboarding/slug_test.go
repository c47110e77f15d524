// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple name",
			input:    "Acme Inc.",
			expected: "acme-inc",
		},
		{
			name:     "already a slug",
			input:    "acme",
			expected: "acme",
		},
		{
			name:     "punctuation collapses to single hyphens",
			input:    "Foo / Bar & Baz!!",
			expected: "foo-bar-baz",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    "  --Acme--  ",
			expected: "acme",
		},
		{
			name:     "digits preserved",
			input:    "Area 51 Labs",
			expected: "area-51-labs",
		},
		{
			name:     "long name truncated",
			input:    strings.Repeat("a", 80),
			expected: strings.Repeat("a", 50),
		},
		{
			name:     "truncation does not leave a trailing hyphen",
			input:    strings.Repeat("a", 49) + " bbbb",
			expected: strings.Repeat("a", 49),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.input)

			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
			if len(got) > maxSlugLength {
				t.Errorf("slug %q exceeds %d characters", got, maxSlugLength)
			}
			if got != "" && !slugPattern.MatchString(got) {
				t.Errorf("slug %q is not lowercase alphanumeric with hyphens", got)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	if Slugify("Acme Inc.") != Slugify("Acme Inc.") {
		t.Error("slug derivation must be deterministic")
	}
}

func TestSuffixedSlug(t *testing.T) {
	base := Slugify("Acme Inc.")

	got := SuffixedSlug(base)

	if got == base {
		t.Error("suffixed slug must differ from the base")
	}
	if !strings.HasPrefix(got, base+"-") {
		t.Errorf("expected prefix %q, got %q", base+"-", got)
	}
	if len(got) > maxSlugLength {
		t.Errorf("suffixed slug %q exceeds %d characters", got, maxSlugLength)
	}
	if !slugPattern.MatchString(got) {
		t.Errorf("suffixed slug %q is not lowercase alphanumeric with hyphens", got)
	}
}

func TestSuffixedSlugLongBase(t *testing.T) {
	base := strings.Repeat("a", maxSlugLength)

	got := SuffixedSlug(base)

	if len(got) > maxSlugLength {
		t.Errorf("suffixed slug %q exceeds %d characters", got, maxSlugLength)
	}
	if !slugPattern.MatchString(got) {
		t.Errorf("suffixed slug %q is not lowercase alphanumeric with hyphens", got)
	}
}
