// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	maxSlugBaseLength = 40
	slugSuffixLength  = 6
	slugAlphabet      = "abcdefghijklmnopqrstuvwxyz0123456789"
	fallbackSlug      = "tenant"
	maxSlugLength     = 63
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug accepts lowercase alphanumeric words joined by single hyphens,
// at most 63 characters long.
func ValidateSlug(slug string) error {
	if len(slug) > maxSlugLength {
		return fmt.Errorf("%w: slug must be at most %d characters", ErrInvalidInput, maxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug must contain only lowercase letters, digits and single hyphens", ErrInvalidInput)
	}

	return nil
}

// Slugify lowercases v and collapses every run of characters outside
// [a-z0-9] into a single hyphen.
func Slugify(v string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(v)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > maxSlugBaseLength {
		slug = strings.TrimRight(slug[:maxSlugBaseLength], "-")
	}

	if slug == "" {
		return fallbackSlug
	}

	return slug
}

func randomSuffix(n int) (string, error) {
	max := big.NewInt(int64(len(slugAlphabet)))
	buf := make([]byte, n)

	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate slug suffix: %w", err)
		}
		buf[i] = slugAlphabet[idx.Int64()]
	}

	return string(buf), nil
}

// GenerateSlug derives a slug from name with a random suffix.
func GenerateSlug(name string) (string, error) {
	suffix, err := randomSuffix(slugSuffixLength)
	if err != nil {
		return "", err
	}

	return Slugify(name) + "-" + suffix, nil
}
