package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velure-shop/velure-backend-go/models"
)

func validProduct() *models.Product {
	return &models.Product{
		Title:  "Classic Tee",
		Handle: "classic-tee",
		Status: models.StatusDraft,
		Options: []models.Option{
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Variants: []models.Variant{
			{
				SKU:             "TEE-S-001",
				Title:           "S",
				Price:           25,
				InventoryPolicy: models.InventoryPolicyDeny,
				Options:         []models.VariantOption{{Name: "Size", Value: "S"}},
			},
			{
				SKU:             "TEE-M-002",
				Title:           "M",
				Price:           25,
				InventoryPolicy: models.InventoryPolicyDeny,
				Options:         []models.VariantOption{{Name: "Size", Value: "M"}},
			},
		},
	}
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Field, field)
}

func TestValidateProduct(t *testing.T) {
	t.Run("valid product passes", func(t *testing.T) {
		assert.NoError(t, ValidateProduct(validProduct()))
	})

	t.Run("zero variants rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants = nil
		assertValidationError(t, ValidateProduct(p), "variants")
	})

	t.Run("duplicate SKUs rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[1].SKU = p.Variants[0].SKU
		assertValidationError(t, ValidateProduct(p), "variants")
	})

	t.Run("missing sku rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].SKU = ""
		assertValidationError(t, ValidateProduct(p), "sku")
	})

	t.Run("negative price rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].Price = -1
		assertValidationError(t, ValidateProduct(p), "price")
	})

	t.Run("negative compare-at price rejected", func(t *testing.T) {
		p := validProduct()
		bad := -0.01
		p.Variants[0].CompareAtPrice = &bad
		assertValidationError(t, ValidateProduct(p), "compareAtPrice")
	})

	t.Run("negative inventory rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].InventoryQuantity = -5
		assertValidationError(t, ValidateProduct(p), "inventoryQuantity")
	})

	t.Run("unknown inventory policy rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].InventoryPolicy = "backorder"
		assertValidationError(t, ValidateProduct(p), "inventoryPolicy")
	})

	t.Run("missing option selection rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].Options = nil
		assertValidationError(t, ValidateProduct(p), "options")
	})

	t.Run("undeclared option value rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].Options = []models.VariantOption{{Name: "Size", Value: "XL"}}
		assertValidationError(t, ValidateProduct(p), "options")
	})

	t.Run("wrong option name rejected", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].Options = []models.VariantOption{{Name: "Color", Value: "S"}}
		assertValidationError(t, ValidateProduct(p), "options")
	})

	t.Run("variants without options are fine when product has none", func(t *testing.T) {
		p := validProduct()
		p.Options = nil
		p.Variants[0].Options = nil
		p.Variants[1].Options = nil
		assert.NoError(t, ValidateProduct(p))
	})

	t.Run("malformed handle rejected", func(t *testing.T) {
		p := validProduct()
		p.Handle = "Classic--Tee"
		assertValidationError(t, ValidateProduct(p), "handle")

		p.Handle = ""
		assertValidationError(t, ValidateProduct(p), "handle")
	})

	t.Run("active without publishedAt rejected", func(t *testing.T) {
		p := validProduct()
		p.Status = models.StatusActive
		assertValidationError(t, ValidateProduct(p), "publishedAt")
	})
}

func TestApplyStatus(t *testing.T) {
	now := time.Now()

	t.Run("activation stamps publishedAt once", func(t *testing.T) {
		p := validProduct()
		ApplyStatus(p, models.StatusActive, now)
		require.NotNil(t, p.PublishedAt)
		first := *p.PublishedAt

		ApplyStatus(p, models.StatusArchived, now.Add(time.Hour))
		ApplyStatus(p, models.StatusActive, now.Add(2*time.Hour))
		assert.Equal(t, first, *p.PublishedAt, "re-activation must not overwrite publishedAt")
		assert.Equal(t, models.StatusActive, p.Status)
	})

	t.Run("draft never stamps", func(t *testing.T) {
		p := validProduct()
		ApplyStatus(p, models.StatusDraft, now)
		assert.Nil(t, p.PublishedAt)
	})
}

func TestEnrich(t *testing.T) {
	t.Run("derived fields computed", func(t *testing.T) {
		p := validProduct()
		p.Variants[0].InventoryQuantity = 4
		p.Variants[1].Price = 30

		Enrich(p)

		assert.Equal(t, models.PriceRange{Min: 25, Max: 30}, p.PriceRange)
		assert.Equal(t, 4, p.TotalInventory)
		assert.True(t, p.InStock)
	})

	t.Run("seo fallbacks", func(t *testing.T) {
		p := validProduct()
		p.DescriptionHTML = "<p>A &quot;timeless&quot; staple.</p>"

		Enrich(p)

		assert.Equal(t, "Classic Tee", p.SeoTitle)
		assert.Equal(t, `A "timeless" staple.`, p.SeoDescription)
	})

	t.Run("explicit seo values kept", func(t *testing.T) {
		p := validProduct()
		p.SeoTitle = "Buy the Classic Tee"
		p.SeoDescription = "Hand-written copy."
		p.DescriptionHTML = "<p>ignored</p>"

		Enrich(p)

		assert.Equal(t, "Buy the Classic Tee", p.SeoTitle)
		assert.Equal(t, "Hand-written copy.", p.SeoDescription)
	})
}
