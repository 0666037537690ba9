package catalog

import (
	"fmt"
	"strings"

	"github.com/velure-shop/velure-backend-go/models"
)

// DefaultSKUPrefix is used when the caller supplies no prefix.
const DefaultSKUPrefix = "SKU"

// GenerateCombinations expands options into the cartesian product of their
// values, preserving option order within each row. The last option varies
// fastest, so grouping rows by any prefix of the options yields contiguous
// runs. Empty options produce a single empty combination (one default
// variant). Options with empty value lists must be rejected before calling.
func GenerateCombinations(options []models.Option) [][]models.VariantOption {
	combos := [][]models.VariantOption{{}}
	for _, opt := range options {
		next := make([][]models.VariantOption, 0, len(combos)*len(opt.Values))
		for _, combo := range combos {
			for _, value := range opt.Values {
				row := make([]models.VariantOption, len(combo), len(combo)+1)
				copy(row, combo)
				row = append(row, models.VariantOption{Name: opt.Name, Value: value})
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}

// skuToken reduces an option value to an uppercased alphanumeric token of at
// most three characters. Distinct values sharing a prefix ("Navy" and "Nav")
// collide here; the index suffix is what keeps generated SKUs unique.
func skuToken(value string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(value) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return b.String()
}

// SynthesizeVariant builds the variant for one combination. index is the
// 1-based position of the combination and becomes the zero-padded SKU suffix:
// combination [S, Red] with prefix "SKU" and index 1 yields SKU-S-RED-001,
// titled "S / Red". Generated variants start at zero inventory with the deny
// policy; callers edit price and stock individually afterward.
func SynthesizeVariant(combo []models.VariantOption, index int, basePrice float64, skuPrefix string) models.Variant {
	values := make([]string, len(combo))
	tokens := make([]string, len(combo))
	for i, o := range combo {
		values[i] = o.Value
		tokens[i] = skuToken(o.Value)
	}

	return models.Variant{
		SKU:             fmt.Sprintf("%s-%s-%03d", skuPrefix, strings.Join(tokens, "-"), index),
		Title:           strings.Join(values, " / "),
		Price:           basePrice,
		InventoryPolicy: models.InventoryPolicyDeny,
		Options:         combo,
	}
}

// GenerateVariants expands options into one variant per combination. With no
// options it returns a single default variant. Regenerating a product's
// variants through this function replaces the prior list wholesale; inventory
// and pricing on the old variants are not carried over.
func GenerateVariants(options []models.Option, basePrice float64, skuPrefix string) []models.Variant {
	if skuPrefix == "" {
		skuPrefix = DefaultSKUPrefix
	}

	if len(options) == 0 {
		return []models.Variant{{
			SKU:             skuPrefix + "-DEFAULT",
			Title:           "Default",
			Price:           basePrice,
			InventoryPolicy: models.InventoryPolicyDeny,
			Options:         []models.VariantOption{},
		}}
	}

	combos := GenerateCombinations(options)
	variants := make([]models.Variant, len(combos))
	for i, combo := range combos {
		variants[i] = SynthesizeVariant(combo, i+1, basePrice, skuPrefix)
	}
	return variants
}

// ExtractColorFamily returns the declared values of a "Color"/"Colour"
// option, or nil when the product has none.
func ExtractColorFamily(options []models.Option) []string {
	for _, opt := range options {
		switch strings.ToLower(opt.Name) {
		case "color", "colour":
			return opt.Values
		}
	}
	return nil
}
