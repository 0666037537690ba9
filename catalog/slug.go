package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts free text into a URL-safe handle: lowercased, whitespace
// collapsed to single hyphens, everything outside [a-z0-9-] stripped.
// "Classic  Tee!" -> "classic-tee". Idempotent.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// HandleExistsFunc reports whether a handle is already taken by another
// product. Supplied by the persistence layer; when probing for an update it
// must exclude the product being updated.
type HandleExistsFunc func(ctx context.Context, handle string) (bool, error)

// GenerateUniqueHandle slugifies title and probes exists with the base slug,
// then base-1, base-2 and so on until a free candidate is found. When the
// title still slugifies to existingHandle the handle is returned unchanged.
// Probes run sequentially; two racing callers can both see a handle as free,
// which the persistence layer resolves with its unique index.
func GenerateUniqueHandle(ctx context.Context, title, existingHandle string, exists HandleExistsFunc) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", &ValidationError{Field: "title", Message: "title must contain at least one letter or digit"}
	}

	if existingHandle != "" && base == existingHandle {
		return existingHandle, nil
	}

	handle := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, handle)
		if err != nil {
			return "", fmt.Errorf("checking handle %q: %w", handle, err)
		}
		if !taken {
			return handle, nil
		}
		handle = fmt.Sprintf("%s-%d", base, counter)
	}
}
