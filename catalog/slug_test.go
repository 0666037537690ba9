package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Classic Tee", "classic-tee"},
		{"already a slug", "classic-tee", "classic-tee"},
		{"punctuation stripped", "Mom's \"Favorite\" Hoodie!", "moms-favorite-hoodie"},
		{"whitespace collapsed", "  Linen   Shirt  ", "linen-shirt"},
		{"repeated hyphens collapsed", "tee -- limited", "tee-limited"},
		{"leading and trailing hyphens trimmed", "--sale--", "sale"},
		{"uppercase lowered", "OVERSIZED TEE", "oversized-tee"},
		{"digits kept", "501 Original", "501-original"},
		{"non-ascii stripped", "Tricot Café", "tricot-caf"},
		{"punctuation only", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Classic Tee",
		"Mom's \"Favorite\" Hoodie!",
		"  a  b  c  ",
		"--x--y--",
		"ALL CAPS 99",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", in)
	}
}

func TestSlugifyGrammar(t *testing.T) {
	grammar := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"Classic Tee",
		"  weird -- input !! 42 ",
		"ünïcode Müsli",
		"a",
	}
	for _, in := range inputs {
		slug := Slugify(in)
		if slug == "" {
			continue
		}
		assert.Regexp(t, grammar, slug, "slug for %q", in)
	}
}

// mapExists builds a HandleExistsFunc over a fixed set of taken handles.
func mapExists(taken ...string) HandleExistsFunc {
	set := map[string]bool{}
	for _, h := range taken {
		set[h] = true
	}
	return func(ctx context.Context, handle string) (bool, error) {
		return set[handle], nil
	}
}

func TestGenerateUniqueHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("base handle free", func(t *testing.T) {
		handle, err := GenerateUniqueHandle(ctx, "Shirt", "", mapExists())
		require.NoError(t, err)
		assert.Equal(t, "shirt", handle)
	})

	t.Run("probes until free", func(t *testing.T) {
		handle, err := GenerateUniqueHandle(ctx, "Shirt", "", mapExists("shirt", "shirt-1"))
		require.NoError(t, err)
		assert.Equal(t, "shirt-2", handle)
	})

	t.Run("unchanged title keeps existing handle without probing", func(t *testing.T) {
		probed := false
		exists := func(ctx context.Context, handle string) (bool, error) {
			probed = true
			return true, nil
		}
		handle, err := GenerateUniqueHandle(ctx, "Classic Tee", "classic-tee", exists)
		require.NoError(t, err)
		assert.Equal(t, "classic-tee", handle)
		assert.False(t, probed)
	})

	t.Run("changed title regenerates", func(t *testing.T) {
		handle, err := GenerateUniqueHandle(ctx, "Classic Tee v2", "classic-tee", mapExists())
		require.NoError(t, err)
		assert.Equal(t, "classic-tee-v2", handle)
	})

	t.Run("empty slug is a validation error", func(t *testing.T) {
		_, err := GenerateUniqueHandle(ctx, "!!!", "", mapExists())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("probe errors propagate", func(t *testing.T) {
		boom := errors.New("connection reset")
		exists := func(ctx context.Context, handle string) (bool, error) {
			return false, boom
		}
		_, err := GenerateUniqueHandle(ctx, "Shirt", "", exists)
		require.ErrorIs(t, err, boom)
	})

	t.Run("probes run in sequence", func(t *testing.T) {
		var order []string
		exists := func(ctx context.Context, handle string) (bool, error) {
			order = append(order, handle)
			return len(order) < 4, nil
		}
		handle, err := GenerateUniqueHandle(ctx, "Tee", "", exists)
		require.NoError(t, err)
		assert.Equal(t, "tee-3", handle)
		assert.Equal(t, []string{"tee", "tee-1", "tee-2", "tee-3"}, order)
	})
}
