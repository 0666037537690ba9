package catalog

import (
	"fmt"
	"time"

	"github.com/velure-shop/velure-backend-go/models"
)

// ValidateProduct checks the aggregate invariants. It runs at every mutation
// boundary (create, update, variant regeneration, inventory adjustment)
// before the document is persisted.
func ValidateProduct(p *models.Product) error {
	if len(p.Variants) == 0 {
		return &ValidationError{Field: "variants", Message: "product must have at least one variant"}
	}
	if !ValidateUniqueSKUs(p.Variants) {
		return &ValidationError{Field: "variants", Message: "variant SKUs must be unique within a product"}
	}

	for i, v := range p.Variants {
		field := func(name string) string { return fmt.Sprintf("variants[%d].%s", i, name) }
		if v.SKU == "" {
			return &ValidationError{Field: field("sku"), Message: "sku is required"}
		}
		if v.Price < 0 {
			return &ValidationError{Field: field("price"), Message: "price cannot be negative"}
		}
		if v.CompareAtPrice != nil && *v.CompareAtPrice < 0 {
			return &ValidationError{Field: field("compareAtPrice"), Message: "compare-at price cannot be negative"}
		}
		if v.InventoryQuantity < 0 {
			return &ValidationError{Field: field("inventoryQuantity"), Message: "inventory quantity cannot be negative"}
		}
		if v.InventoryPolicy != models.InventoryPolicyDeny && v.InventoryPolicy != models.InventoryPolicyContinue {
			return &ValidationError{Field: field("inventoryPolicy"), Message: "inventory policy must be deny or continue"}
		}
		if len(p.Options) > 0 {
			if err := validateVariantOptions(p.Options, v, i); err != nil {
				return err
			}
		}
	}

	if p.Handle == "" || Slugify(p.Handle) != p.Handle {
		return &ValidationError{Field: "handle", Message: "handle must be a lowercase hyphenated slug"}
	}
	if p.Status == models.StatusActive && p.PublishedAt == nil {
		return &ValidationError{Field: "publishedAt", Message: "active products must carry a publish timestamp"}
	}

	return nil
}

// validateVariantOptions checks that a variant selects exactly one declared
// value per product-level option, in option order.
func validateVariantOptions(options []models.Option, v models.Variant, idx int) error {
	if len(v.Options) != len(options) {
		return &ValidationError{
			Field:   fmt.Sprintf("variants[%d].options", idx),
			Message: fmt.Sprintf("expected %d option selections, got %d", len(options), len(v.Options)),
		}
	}

	for i, opt := range options {
		sel := v.Options[i]
		if sel.Name != opt.Name {
			return &ValidationError{
				Field:   fmt.Sprintf("variants[%d].options[%d]", idx, i),
				Message: fmt.Sprintf("expected option %q, got %q", opt.Name, sel.Name),
			}
		}
		declared := false
		for _, val := range opt.Values {
			if val == sel.Value {
				declared = true
				break
			}
		}
		if !declared {
			return &ValidationError{
				Field:   fmt.Sprintf("variants[%d].options[%d]", idx, i),
				Message: fmt.Sprintf("%q is not a declared value of option %q", sel.Value, opt.Name),
			}
		}
	}
	return nil
}

// ApplyStatus transitions the product lifecycle. The first transition to
// active stamps PublishedAt; re-activations keep the original timestamp.
func ApplyStatus(p *models.Product, status models.ProductStatus, now time.Time) {
	p.Status = status
	if status == models.StatusActive && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

// Enrich fills the derived read-time fields on a product: price range, total
// inventory, stock availability and the SEO fallbacks. Called on every read
// and mutation response; nothing computed here is persisted.
func Enrich(p *models.Product) {
	p.PriceRange = PriceRange(p.Variants)
	p.TotalInventory = TotalInventory(p.Variants)
	p.InStock = InStock(p.Variants)

	if p.SeoTitle == "" {
		p.SeoTitle = SeoTitle(p.Title)
	}
	if p.SeoDescription == "" && p.DescriptionHTML != "" {
		p.SeoDescription = SeoDescription(p.DescriptionHTML)
	}
}
