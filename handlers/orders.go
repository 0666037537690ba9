package handlers

import (
	"context"
	"errors"
	"fmt"
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

type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

func CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	// Get user's cart
	var cart models.Cart
	err := database.DB.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
	}

	// Revalidate every line against current stock and pricing, then decrement
	// inventory. Variants with the continue policy may oversell; their
	// quantity is floored at zero rather than going negative.
	total := 0.0
	var orderItems []models.OrderItem
	productsCollection := database.DB.Collection("products")

	for _, item := range cart.Items {
		var product models.Product
		err := productsCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("Failed to fetch product %s", item.ProductID.Hex()),
			})
		}

		variant := findVariant(&product, item.SKU)
		if variant == nil {
			return catalogError(c, &catalog.NotFoundError{Resource: "variant", ID: item.SKU})
		}
		if !sellable(variant, item.Quantity) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("Insufficient stock for %s (%s)", product.Title, variant.SKU),
			})
		}

		remaining := variant.InventoryQuantity - item.Quantity
		if remaining < 0 {
			remaining = 0
		}

		arrayFilters := options.ArrayFilters{
			Filters: []interface{}{bson.M{"elem.sku": variant.SKU}},
		}
		_, err = productsCollection.UpdateOne(
			ctx,
			bson.M{"_id": product.ID},
			bson.M{"$set": bson.M{
				"variants.$[elem].inventoryQuantity": remaining,
				"updatedAt":                          time.Now(),
			}},
			options.Update().SetArrayFilters(arrayFilters),
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reserve stock"})
		}

		total += variant.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			SKU:       variant.SKU,
			Title:     item.Title,
			Price:     variant.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		OrderNumber:     fmt.Sprintf("VL-%d", time.Now().UnixNano()),
		Items:           orderItems,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusProcessing,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if _, err := database.DB.Collection("orders").InsertOne(ctx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
	}

	// Clear cart after successful order creation
	_, err = database.DB.Collection("carts").UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.Logger().Warnf("failed to clear cart after order creation: %v", err)
	}

	return c.JSON(http.StatusCreated, order)
}

func GetMyOrders(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cursor, err := database.DB.Collection("orders").Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	return c.JSON(http.StatusOK, orders)
}

func GetOrder(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var order models.Order
	err = database.DB.Collection("orders").FindOne(
		c.Request().Context(),
		bson.M{"_id": orderID, "userId": userID},
	).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

func GetOrderStatus(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var order models.Order
	err = database.DB.Collection("orders").FindOne(c.Request().Context(), bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"paymentStatus": string(order.PaymentStatus),
		"orderStatus":   string(order.OrderStatus),
	})
}

// ListOrders returns every order, newest first. Admin only.
func ListOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cursor, err := database.DB.Collection("orders").Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order through fulfillment. Admin only.
func UpdateOrderStatus(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var req struct {
		OrderStatus string `json:"orderStatus" validate:"required,oneof=processing shipped delivered cancelled"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := database.DB.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"orderStatus": models.OrderStatus(req.OrderStatus),
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order status updated"})
}
