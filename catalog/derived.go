package catalog

import "github.com/velure-shop/velure-backend-go/models"

// The derived-field calculators below are pure linear scans. They run on
// every product read, so they must stay free of side effects and shared
// state.

// PriceRange returns the lowest and highest variant price, or zeroes for an
// empty list. Min == Max is valid and means a single-priced product.
func PriceRange(variants []models.Variant) models.PriceRange {
	if len(variants) == 0 {
		return models.PriceRange{}
	}

	r := models.PriceRange{Min: variants[0].Price, Max: variants[0].Price}
	for _, v := range variants[1:] {
		if v.Price < r.Min {
			r.Min = v.Price
		}
		if v.Price > r.Max {
			r.Max = v.Price
		}
	}
	return r
}

// TotalInventory sums inventoryQuantity across all variants.
func TotalInventory(variants []models.Variant) int {
	total := 0
	for _, v := range variants {
		total += v.InventoryQuantity
	}
	return total
}

// InStock reports whether at least one variant can currently be sold: it has
// inventory, or its policy allows overselling.
func InStock(variants []models.Variant) bool {
	for _, v := range variants {
		if v.InventoryQuantity > 0 || v.InventoryPolicy == models.InventoryPolicyContinue {
			return true
		}
	}
	return false
}

// ValidateUniqueSKUs reports whether every SKU in the list is distinct.
func ValidateUniqueSKUs(variants []models.Variant) bool {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, ok := seen[v.SKU]; ok {
			return false
		}
		seen[v.SKU] = struct{}{}
	}
	return true
}
