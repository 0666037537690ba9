package models

// VariantInput is a caller-supplied variant on create/update.
type VariantInput struct {
	SKU               string          `json:"sku" validate:"required"`
	Title             string          `json:"title"`
	Price             float64         `json:"price" validate:"gte=0"`
	CompareAtPrice    *float64        `json:"compareAtPrice" validate:"omitempty,gte=0"`
	InventoryQuantity int             `json:"inventoryQuantity" validate:"gte=0"`
	InventoryPolicy   string          `json:"inventoryPolicy" validate:"omitempty,invpolicy"`
	Options           []VariantOption `json:"options"`
	Barcode           *string         `json:"barcode"`
}

// ToVariant converts the input to the persisted shape, defaulting the
// inventory policy to deny.
func (vi VariantInput) ToVariant() Variant {
	policy := InventoryPolicy(vi.InventoryPolicy)
	if policy == "" {
		policy = InventoryPolicyDeny
	}
	options := vi.Options
	if options == nil {
		options = []VariantOption{}
	}
	return Variant{
		SKU:               vi.SKU,
		Title:             vi.Title,
		Price:             vi.Price,
		CompareAtPrice:    vi.CompareAtPrice,
		InventoryQuantity: vi.InventoryQuantity,
		InventoryPolicy:   policy,
		Options:           options,
		Barcode:           vi.Barcode,
	}
}

// CreateProductInput is the payload for POST /api/admin/products. Variants may
// be omitted when options are supplied; they are then generated from the
// cartesian product of the option values.
type CreateProductInput struct {
	Title            string         `json:"title" validate:"required,min=2,max=256"`
	Handle           string         `json:"handle" validate:"omitempty,handle"`
	DescriptionHTML  string         `json:"descriptionHtml"`
	Status           string         `json:"status" validate:"omitempty,oneof=draft active archived"`
	Vendor           string         `json:"vendor"`
	ProductType      string         `json:"productType"`
	Images           []Image        `json:"images" validate:"omitempty,dive"`
	Options          []Option       `json:"options" validate:"omitempty,dive"`
	Variants         []VariantInput `json:"variants" validate:"omitempty,dive"`
	BasePrice        float64        `json:"basePrice" validate:"gte=0"`
	SKUPrefix        string         `json:"skuPrefix"`
	SeoTitle         string         `json:"seoTitle" validate:"max=70"`
	SeoDescription   string         `json:"seoDescription" validate:"max=160"`
	Tags             []string       `json:"tags"`
	Collections      []string       `json:"collections"`
	Gender           string         `json:"gender" validate:"omitempty,oneof=men women unisex"`
	Fit              string         `json:"fit" validate:"omitempty,oneof=regular oversized slim relaxed"`
	Materials        []string       `json:"materials"`
	ColorFamily      []string       `json:"colorFamily"`
	Weight           float64        `json:"weight" validate:"gte=0"`
	WeightUnit       string         `json:"weightUnit" validate:"omitempty,oneof=kg g lb oz"`
	RequiresShipping *bool          `json:"requiresShipping"`
}

// UpdateProductInput is the payload for PUT /api/admin/products/:id. Every
// field is optional; nil means "leave unchanged".
type UpdateProductInput struct {
	Title            *string         `json:"title" validate:"omitempty,min=2,max=256"`
	Handle           *string         `json:"handle" validate:"omitempty,handle"`
	DescriptionHTML  *string         `json:"descriptionHtml"`
	Status           *string         `json:"status" validate:"omitempty,oneof=draft active archived"`
	Vendor           *string         `json:"vendor"`
	ProductType      *string         `json:"productType"`
	Images           []Image         `json:"images" validate:"omitempty,dive"`
	Options          []Option        `json:"options" validate:"omitempty,dive"`
	Variants         []VariantInput  `json:"variants" validate:"omitempty,dive"`
	SeoTitle         *string         `json:"seoTitle" validate:"omitempty,max=70"`
	SeoDescription   *string         `json:"seoDescription" validate:"omitempty,max=160"`
	Tags             []string        `json:"tags"`
	Collections      []string        `json:"collections"`
	Gender           *string         `json:"gender" validate:"omitempty,oneof=men women unisex"`
	Fit              *string         `json:"fit" validate:"omitempty,oneof=regular oversized slim relaxed"`
	Materials        []string        `json:"materials"`
	ColorFamily      []string        `json:"colorFamily"`
	Weight           *float64        `json:"weight" validate:"omitempty,gte=0"`
	WeightUnit       *string         `json:"weightUnit" validate:"omitempty,oneof=kg g lb oz"`
	RequiresShipping *bool           `json:"requiresShipping"`
}

// GenerateVariantsInput drives POST /api/admin/products/:id/variants/generate.
// Regeneration replaces the existing variant list wholesale.
type GenerateVariantsInput struct {
	Options   []Option `json:"options" validate:"omitempty,min=1,dive"`
	BasePrice float64  `json:"basePrice" validate:"gte=0"`
	SKUPrefix string   `json:"skuPrefix"`
}

// InventoryAdjustInput sets a variant's absolute inventory level.
type InventoryAdjustInput struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Policy   string `json:"policy" validate:"omitempty,invpolicy"`
	Reason   string `json:"reason" validate:"max=256"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	SKU       string `json:"sku" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}
