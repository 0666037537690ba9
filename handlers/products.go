package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/velure-shop/velure-backend-go/catalog"
	"github.com/velure-shop/velure-backend-go/database"
	"github.com/velure-shop/velure-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// handleExists builds the uniqueness oracle for catalog.GenerateUniqueHandle,
// excluding the product being updated so it never collides with itself.
func handleExists(exclude primitive.ObjectID) catalog.HandleExistsFunc {
	return func(ctx context.Context, handle string) (bool, error) {
		filter := bson.M{"handle": handle}
		if !exclude.IsZero() {
			filter["_id"] = bson.M{"$ne": exclude}
		}

		err := database.DB.Collection("products").FindOne(ctx, filter).Err()
		if err == nil {
			return true, nil
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
}

// catalogError maps the typed core errors to transport responses.
func catalogError(c echo.Context, err error) error {
	var (
		ve *catalog.ValidationError
		ce *catalog.ConflictError
		ne *catalog.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, map[string]string{"error": ce.Error()})
	case errors.As(err, &ne):
		return c.JSON(http.StatusNotFound, map[string]string{"error": ne.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func CreateProduct(c echo.Context) error {
	var input models.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// A product with neither variants nor options to generate them from can
	// never satisfy the one-variant minimum; reject before touching the DB.
	if len(input.Variants) == 0 && len(input.Options) == 0 {
		return catalogError(c, &catalog.ValidationError{
			Field:   "variants",
			Message: "product must have at least one variant",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	now := time.Now()
	product := models.Product{
		ID:               primitive.NewObjectID(),
		Title:            input.Title,
		DescriptionHTML:  input.DescriptionHTML,
		Vendor:           input.Vendor,
		ProductType:      input.ProductType,
		Status:           models.StatusDraft,
		Tags:             emptyIfNil(input.Tags),
		Collections:      emptyIfNil(input.Collections),
		Gender:           input.Gender,
		Fit:              input.Fit,
		Materials:        emptyIfNil(input.Materials),
		ColorFamily:      emptyIfNil(input.ColorFamily),
		Images:           input.Images,
		Options:          input.Options,
		SeoTitle:         input.SeoTitle,
		SeoDescription:   input.SeoDescription,
		Weight:           input.Weight,
		WeightUnit:       input.WeightUnit,
		RequiresShipping: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if product.Images == nil {
		product.Images = []models.Image{}
	}
	if product.Options == nil {
		product.Options = []models.Option{}
	}
	if input.RequiresShipping != nil {
		product.RequiresShipping = *input.RequiresShipping
	}
	if input.Status != "" {
		catalog.ApplyStatus(&product, models.ProductStatus(input.Status), now)
	}

	if len(input.Variants) > 0 {
		product.Variants = make([]models.Variant, len(input.Variants))
		for i, vi := range input.Variants {
			product.Variants[i] = vi.ToVariant()
		}
	} else {
		product.Variants = catalog.GenerateVariants(product.Options, input.BasePrice, input.SKUPrefix)
	}

	if len(product.ColorFamily) == 0 {
		if colors := catalog.ExtractColorFamily(product.Options); colors != nil {
			product.ColorFamily = colors
		}
	}

	handleSource := input.Title
	if input.Handle != "" {
		handleSource = input.Handle
	}
	handle, err := catalog.GenerateUniqueHandle(ctx, handleSource, "", handleExists(primitive.NilObjectID))
	if err != nil {
		return catalogError(c, err)
	}
	product.Handle = handle

	if err := catalog.ValidateProduct(&product); err != nil {
		return catalogError(c, err)
	}

	if err := insertProduct(ctx, &product, handleSource); err != nil {
		return catalogError(c, err)
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusCreated, product)
}

// insertProduct persists a new product, resolving handle races optimistically:
// when another writer claimed the handle between the probe and the insert, the
// handle is probed again and the insert retried once. A duplicate SKU is
// genuine duplicate input and becomes a conflict immediately.
func insertProduct(ctx context.Context, product *models.Product, handleSource string) error {
	_, err := database.DB.Collection("products").InsertOne(ctx, product)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "variants.sku") {
		return &catalog.ConflictError{Field: "sku"}
	}

	handle, herr := catalog.GenerateUniqueHandle(ctx, handleSource, "", handleExists(primitive.NilObjectID))
	if herr != nil {
		return herr
	}
	product.Handle = handle

	_, err = database.DB.Collection("products").InsertOne(ctx, product)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "variants.sku") {
			return &catalog.ConflictError{Field: "sku"}
		}
		return &catalog.ConflictError{Field: "handle", Value: product.Handle}
	}
	return err
}

func GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	filter := bson.M{"status": models.StatusActive}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	if gender := c.QueryParam("gender"); gender != "" {
		filter["gender"] = gender
	}
	if fit := c.QueryParam("fit"); fit != "" {
		filter["fit"] = fit
	}
	if collection := c.QueryParam("collection"); collection != "" {
		filter["collections"] = collection
	}
	if tag := c.QueryParam("tag"); tag != "" {
		filter["tags"] = tag
	}
	if productType := c.QueryParam("productType"); productType != "" {
		filter["productType"] = productType
	}
	if search := c.QueryParam("search"); search != "" {
		filter["$text"] = bson.M{"$search": search}
	}

	priceFilter := bson.M{}
	if minPrice, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		priceFilter["$gte"] = minPrice
	}
	if maxPrice, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		priceFilter["$lte"] = maxPrice
	}
	if len(priceFilter) > 0 {
		filter["variants.price"] = priceFilter
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 12)
	if limit > 100 {
		limit = 100
	}

	sortField, sortDir := "createdAt", -1
	if sort := c.QueryParam("sort"); sort != "" {
		sortField, sortDir = sort, 1
		if strings.HasPrefix(sort, "-") {
			sortField, sortDir = sort[1:], -1
		}
	}

	collection := database.DB.Collection("products")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to count products"})
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			continue
		}
		catalog.Enrich(&product)
		products = append(products, product)
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"pagination": map[string]interface{}{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func GetProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var product models.Product
	err = database.DB.Collection("products").FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: c.Param("id")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusOK, product)
}

func GetProductByHandle(c echo.Context) error {
	handle := c.Param("handle")
	if catalog.Slugify(handle) != handle {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid handle format"})
	}

	var product models.Product
	err := database.DB.Collection("products").FindOne(c.Request().Context(), bson.M{"handle": handle}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: handle})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusOK, product)
}

// GetCategories lists the distinct product types among active products.
func GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	values, err := database.DB.Collection("products").Distinct(ctx, "productType", bson.M{"status": models.StatusActive})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch categories"})
	}

	categories := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return c.JSON(http.StatusOK, categories)
}

// GetFeaturedProducts returns the newest active products for the landing page.
func GetFeaturedProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	limit := queryInt(c, "limit", 8)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := database.DB.Collection("products").Find(ctx, bson.M{"status": models.StatusActive}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			continue
		}
		catalog.Enrich(&product)
		products = append(products, product)
	}

	return c.JSON(http.StatusOK, products)
}

func UpdateProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var input models.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var product models.Product
	err = database.DB.Collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: c.Param("id")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	now := time.Now()

	if input.Title != nil && *input.Title != product.Title {
		product.Title = *input.Title
		// A changed title regenerates the handle; GenerateUniqueHandle keeps
		// the old one when the new title slugifies to the same thing.
		handle, herr := catalog.GenerateUniqueHandle(ctx, product.Title, product.Handle, handleExists(objID))
		if herr != nil {
			return catalogError(c, herr)
		}
		product.Handle = handle
	}
	if input.Handle != nil {
		product.Handle = *input.Handle
	}
	if input.Status != nil {
		catalog.ApplyStatus(&product, models.ProductStatus(*input.Status), now)
	}
	if input.DescriptionHTML != nil {
		product.DescriptionHTML = *input.DescriptionHTML
	}
	if input.Vendor != nil {
		product.Vendor = *input.Vendor
	}
	if input.ProductType != nil {
		product.ProductType = *input.ProductType
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Options != nil {
		product.Options = input.Options
	}
	if input.Variants != nil {
		product.Variants = make([]models.Variant, len(input.Variants))
		for i, vi := range input.Variants {
			product.Variants[i] = vi.ToVariant()
		}
	}
	if input.SeoTitle != nil {
		product.SeoTitle = *input.SeoTitle
	}
	if input.SeoDescription != nil {
		product.SeoDescription = *input.SeoDescription
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Collections != nil {
		product.Collections = input.Collections
	}
	if input.Gender != nil {
		product.Gender = *input.Gender
	}
	if input.Fit != nil {
		product.Fit = *input.Fit
	}
	if input.Materials != nil {
		product.Materials = input.Materials
	}
	if input.ColorFamily != nil {
		product.ColorFamily = input.ColorFamily
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.WeightUnit != nil {
		product.WeightUnit = *input.WeightUnit
	}
	if input.RequiresShipping != nil {
		product.RequiresShipping = *input.RequiresShipping
	}
	product.UpdatedAt = now

	if err := catalog.ValidateProduct(&product); err != nil {
		return catalogError(c, err)
	}

	if err := replaceProduct(ctx, objID, &product); err != nil {
		return catalogError(c, err)
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusOK, product)
}

func replaceProduct(ctx context.Context, objID primitive.ObjectID, product *models.Product) error {
	_, err := database.DB.Collection("products").ReplaceOne(ctx, bson.M{"_id": objID}, product)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "variants.sku") {
			return &catalog.ConflictError{Field: "sku"}
		}
		return &catalog.ConflictError{Field: "handle", Value: product.Handle}
	}
	return err
}

// DeleteProduct archives rather than removes: order history keeps pointing at
// a real document.
func DeleteProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := database.DB.Collection("products").UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": models.StatusArchived, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to archive product"})
	}
	if result.MatchedCount == 0 {
		return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: c.Param("id")})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product archived"})
}

// RegenerateVariants replaces the product's variant list with a fresh
// expansion of its options. Destructive: prior inventory and pricing on
// matching combinations are not preserved.
func RegenerateVariants(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var input models.GenerateVariantsInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var product models.Product
	err = database.DB.Collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: c.Param("id")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	if input.Options != nil {
		product.Options = input.Options
	}
	product.Variants = catalog.GenerateVariants(product.Options, input.BasePrice, input.SKUPrefix)
	product.UpdatedAt = time.Now()

	if err := catalog.ValidateProduct(&product); err != nil {
		return catalogError(c, err)
	}
	if err := replaceProduct(ctx, objID, &product); err != nil {
		return catalogError(c, err)
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusOK, product)
}

// UpdateInventory sets a variant's absolute inventory level and optionally
// its oversell policy, and writes an audit record.
func UpdateInventory(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var input models.InventoryAdjustInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var product models.Product
	err = database.DB.Collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: c.Param("id")})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	idx := -1
	for i, v := range product.Variants {
		if v.SKU == input.SKU {
			idx = i
			break
		}
	}
	if idx == -1 {
		return catalogError(c, &catalog.NotFoundError{Resource: "variant", ID: input.SKU})
	}

	previous := product.Variants[idx].InventoryQuantity
	product.Variants[idx].InventoryQuantity = input.Quantity
	if input.Policy != "" {
		product.Variants[idx].InventoryPolicy = models.InventoryPolicy(input.Policy)
	}
	product.UpdatedAt = time.Now()

	if err := catalog.ValidateProduct(&product); err != nil {
		return catalogError(c, err)
	}
	if err := replaceProduct(ctx, objID, &product); err != nil {
		return catalogError(c, err)
	}

	adjustment := models.InventoryAdjustment{
		ID:           primitive.NewObjectID(),
		ProductID:    objID,
		SKU:          input.SKU,
		FromQuantity: previous,
		ToQuantity:   input.Quantity,
		Reason:       input.Reason,
		Timestamp:    time.Now(),
	}
	if userID, ok := c.Get("userID").(primitive.ObjectID); ok {
		adjustment.AdjustedBy = userID
	}
	if _, err := database.DB.Collection("inventory_adjustments").InsertOne(ctx, adjustment); err != nil {
		// The variant update already landed; a lost audit row is not worth a 500.
		c.Logger().Warnf("failed to record inventory adjustment: %v", err)
	}

	catalog.Enrich(&product)
	return c.JSON(http.StatusOK, product)
}
