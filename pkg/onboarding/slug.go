// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const (
	maxSlugLength    = 50
	slugSuffixLength = 6
)

// Slugify derives a URL-safe organization slug from a display name:
// lowercase, non-alphanumerics collapsed to single hyphens, trimmed,
// truncated to 50 characters. Deterministic for a given name.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// SuffixedSlug appends a short random suffix for the single collision
// retry, keeping the result within the slug length limit.
func SuffixedSlug(slug string) string {
	maxBase := maxSlugLength - slugSuffixLength - 1
	if len(slug) > maxBase {
		slug = strings.Trim(slug[:maxBase], "-")
	}
	return slug + "-" + randomSuffix()
}

func randomSuffix() string {
	buf := make([]byte, slugSuffixLength/2)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
