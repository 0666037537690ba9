package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseCreateInput() CreateProductInput {
	return CreateProductInput{
		Title: "Classic Tee",
		Variants: []VariantInput{
			{SKU: "TEE-001", Price: 25},
		},
	}
}

func TestCreateProductInputValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*CreateProductInput)
		wantErr bool
	}{
		{"minimal valid input", func(in *CreateProductInput) {}, false},
		{"missing title", func(in *CreateProductInput) { in.Title = "" }, true},
		{"title too short", func(in *CreateProductInput) { in.Title = "T" }, true},
		{"title too long", func(in *CreateProductInput) { in.Title = strings.Repeat("a", 257) }, true},
		{"title at max", func(in *CreateProductInput) { in.Title = strings.Repeat("a", 256) }, false},
		{"valid handle", func(in *CreateProductInput) { in.Handle = "classic-tee" }, false},
		{"handle with uppercase", func(in *CreateProductInput) { in.Handle = "Classic-Tee" }, true},
		{"handle with double hyphen", func(in *CreateProductInput) { in.Handle = "classic--tee" }, true},
		{"handle with leading hyphen", func(in *CreateProductInput) { in.Handle = "-classic" }, true},
		{"handle with trailing hyphen", func(in *CreateProductInput) { in.Handle = "classic-" }, true},
		{"valid status", func(in *CreateProductInput) { in.Status = "active" }, false},
		{"unknown status", func(in *CreateProductInput) { in.Status = "published" }, true},
		{"valid gender", func(in *CreateProductInput) { in.Gender = "unisex" }, false},
		{"unknown gender", func(in *CreateProductInput) { in.Gender = "kids" }, true},
		{"valid fit", func(in *CreateProductInput) { in.Fit = "oversized" }, false},
		{"unknown fit", func(in *CreateProductInput) { in.Fit = "baggy" }, true},
		{"valid weight unit", func(in *CreateProductInput) { in.WeightUnit = "oz" }, false},
		{"unknown weight unit", func(in *CreateProductInput) { in.WeightUnit = "stone" }, true},
		{"seo title at limit", func(in *CreateProductInput) { in.SeoTitle = strings.Repeat("x", 70) }, false},
		{"seo title over limit", func(in *CreateProductInput) { in.SeoTitle = strings.Repeat("x", 71) }, true},
		{"seo description at limit", func(in *CreateProductInput) { in.SeoDescription = strings.Repeat("x", 160) }, false},
		{"seo description over limit", func(in *CreateProductInput) { in.SeoDescription = strings.Repeat("x", 161) }, true},
		{"negative base price", func(in *CreateProductInput) { in.BasePrice = -1 }, true},
		{"option without values", func(in *CreateProductInput) {
			in.Options = []Option{{Name: "Size", Values: []string{}}}
		}, true},
		{"option with empty value", func(in *CreateProductInput) {
			in.Options = []Option{{Name: "Size", Values: []string{""}}}
		}, true},
		{"option without name", func(in *CreateProductInput) {
			in.Options = []Option{{Values: []string{"S"}}}
		}, true},
		{"variant missing sku", func(in *CreateProductInput) { in.Variants[0].SKU = "" }, true},
		{"variant negative price", func(in *CreateProductInput) { in.Variants[0].Price = -5 }, true},
		{"variant unknown policy", func(in *CreateProductInput) { in.Variants[0].InventoryPolicy = "backorder" }, true},
		{"variant continue policy", func(in *CreateProductInput) { in.Variants[0].InventoryPolicy = "continue" }, false},
		{"image with bad url", func(in *CreateProductInput) {
			in.Images = []Image{{URL: "not a url"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseCreateInput()
			tt.mutate(&in)
			err := v.Validate(in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInventoryAdjustInputValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(InventoryAdjustInput{SKU: "TEE-001", Quantity: 5}))
	assert.NoError(t, v.Validate(InventoryAdjustInput{SKU: "TEE-001", Quantity: 0, Policy: "deny"}))
	assert.Error(t, v.Validate(InventoryAdjustInput{Quantity: 5}), "sku is required")
	assert.Error(t, v.Validate(InventoryAdjustInput{SKU: "TEE-001", Quantity: -1}))
	assert.Error(t, v.Validate(InventoryAdjustInput{SKU: "TEE-001", Policy: "maybe"}))
	assert.Error(t, v.Validate(InventoryAdjustInput{SKU: "TEE-001", Reason: strings.Repeat("r", 257)}))
}

func TestVariantInputToVariant(t *testing.T) {
	t.Run("defaults policy to deny", func(t *testing.T) {
		v := VariantInput{SKU: "TEE-001", Price: 25}.ToVariant()
		assert.Equal(t, InventoryPolicyDeny, v.InventoryPolicy)
		assert.NotNil(t, v.Options)
		assert.Empty(t, v.Options)
	})

	t.Run("keeps explicit policy", func(t *testing.T) {
		v := VariantInput{SKU: "TEE-001", InventoryPolicy: "continue"}.ToVariant()
		assert.Equal(t, InventoryPolicyContinue, v.InventoryPolicy)
	})
}

func TestRegisterInputValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"}))
	assert.Error(t, v.Validate(RegisterInput{Name: "Ada", Email: "not-an-email", Password: "longenough"}))
	assert.Error(t, v.Validate(RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "short"}))
}
