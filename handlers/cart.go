package handlers

import (
	"context"
	"errors"
	"net/http"
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

// findVariant locates a variant by SKU within a product.
func findVariant(product *models.Product, sku string) *models.Variant {
	for i := range product.Variants {
		if product.Variants[i].SKU == sku {
			return &product.Variants[i]
		}
	}
	return nil
}

// sellable reports whether quantity units of the variant can be sold under
// its inventory policy.
func sellable(v *models.Variant, quantity int) bool {
	if v.InventoryPolicy == models.InventoryPolicyContinue {
		return true
	}
	return v.InventoryQuantity >= quantity
}

func AddToCart(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var input models.CartItemInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var product models.Product
	err = database.DB.Collection("products").FindOne(ctx, bson.M{"_id": productID, "status": models.StatusActive}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalogError(c, &catalog.NotFoundError{Resource: "product", ID: input.ProductID})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	variant := findVariant(&product, input.SKU)
	if variant == nil {
		return catalogError(c, &catalog.NotFoundError{Resource: "variant", ID: input.SKU})
	}
	if !sellable(variant, input.Quantity) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Insufficient stock for variant " + input.SKU})
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}
	item := models.CartItem{
		ProductID: productID,
		SKU:       variant.SKU,
		Title:     product.Title + " - " + variant.Title,
		Price:     variant.Price,
		Quantity:  input.Quantity,
		Image:     image,
	}

	update := bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result := database.DB.Collection("carts").FindOneAndUpdate(
		ctx,
		bson.M{"userId": userID},
		update,
		options.FindOneAndUpdate().SetUpsert(true),
	)
	if result.Err() != nil && !errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item added to cart"})
}

// GetCart retrieves the user's cart
func GetCart(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var cart models.Cart
	err := database.DB.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusOK, models.Cart{UserID: userID, Items: []models.CartItem{}})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	return c.JSON(http.StatusOK, cart)
}

// RemoveFromCart removes an item from the cart
func RemoveFromCart(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	sku := c.Param("sku")

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"items": bson.M{"sku": sku}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := database.DB.Collection("carts").UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// UpdateCartItemQuantity updates the quantity of an item in the cart
func UpdateCartItemQuantity(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var input models.CartItemInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": input.Quantity,
			"updatedAt":              time.Now(),
		},
	}

	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.sku": input.SKU},
		},
	}

	result, err := database.DB.Collection("carts").UpdateOne(
		ctx,
		bson.M{"userId": userID},
		update,
		options.Update().SetArrayFilters(arrayFilters),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}
