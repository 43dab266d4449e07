package pkg

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	// invalidSlugChars matches every character a slug may not contain.
	// Spaces and hyphens survive this pass and are collapsed afterwards.
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9 -]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	hyphenRuns       = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, strip invalid
// characters, collapse whitespace runs to single hyphens, collapse hyphen
// runs, and trim leading/trailing hyphens. Slugify is idempotent: applying
// it to its own output returns the same string.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = invalidSlugChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug returns the first slug in the sequence base, base-2, base-3, …
// for which exists reports false. A title that normalizes to an empty base
// is accepted; collisions then produce degenerate slugs like "-2".
//
// The check-then-insert window that remains after this probe is closed by
// the store's unique index; repositories translate a duplicate-key error
// on insert into the same conflict error the probe would have produced.
func UniqueSlug(ctx context.Context, base string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter+1)
	}
}
