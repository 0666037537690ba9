package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusActive   ProductStatus = "active"
	StatusArchived ProductStatus = "archived"
)

type InventoryPolicy string

const (
	// InventoryPolicyDeny blocks sales once a variant's inventory reaches zero.
	InventoryPolicyDeny InventoryPolicy = "deny"
	// InventoryPolicyContinue allows overselling past zero inventory.
	InventoryPolicyContinue InventoryPolicy = "continue"
)

// Option is a named axis of variation, e.g. "Size" -> [S, M, L]. Options only
// describe the cartesian space; price and inventory live on the variants.
type Option struct {
	Name   string   `bson:"name" json:"name" validate:"required"`
	Values []string `bson:"values" json:"values" validate:"required,min=1,dive,required"`
}

// VariantOption is one (option name, selected value) pair on a variant.
type VariantOption struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

// Variant is one purchasable SKU of a product. Variants have no identity
// outside the product document that owns them.
type Variant struct {
	SKU               string          `bson:"sku" json:"sku"`
	Title             string          `bson:"title" json:"title"`
	Price             float64         `bson:"price" json:"price"`
	CompareAtPrice    *float64        `bson:"compareAtPrice,omitempty" json:"compareAtPrice"`
	InventoryQuantity int             `bson:"inventoryQuantity" json:"inventoryQuantity"`
	InventoryPolicy   InventoryPolicy `bson:"inventoryPolicy" json:"inventoryPolicy"`
	Options           []VariantOption `bson:"options" json:"options"`
	Barcode           *string         `bson:"barcode,omitempty" json:"barcode"`
}

type Image struct {
	URL string `bson:"url" json:"url" validate:"omitempty,url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// PriceRange is the spread of variant prices. Min == Max means the product is
// single-priced.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Handle           string             `bson:"handle" json:"handle"`
	DescriptionHTML  string             `bson:"descriptionHtml" json:"descriptionHtml"`
	Vendor           string             `bson:"vendor,omitempty" json:"vendor,omitempty"`
	ProductType      string             `bson:"productType,omitempty" json:"productType,omitempty"`
	Status           ProductStatus      `bson:"status" json:"status"`
	PublishedAt      *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Tags             []string           `bson:"tags" json:"tags"`
	Collections      []string           `bson:"collections" json:"collections"`
	Gender           string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Fit              string             `bson:"fit,omitempty" json:"fit,omitempty"`
	Materials        []string           `bson:"materials" json:"materials"`
	ColorFamily      []string           `bson:"colorFamily" json:"colorFamily"`
	Images           []Image            `bson:"images" json:"images"`
	Options          []Option           `bson:"options" json:"options"`
	Variants         []Variant          `bson:"variants" json:"variants"`
	SeoTitle         string             `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SeoDescription   string             `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	Weight           float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit       string             `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	RequiresShipping bool               `bson:"requiresShipping" json:"requiresShipping"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Computed on every read, never persisted.
	PriceRange     PriceRange `bson:"-" json:"priceRange"`
	TotalInventory int        `bson:"-" json:"totalInventory"`
	InStock        bool       `bson:"-" json:"inStock"`
}
