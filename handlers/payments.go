package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/velure-shop/velure-backend-go/database"
	"github.com/velure-shop/velure-backend-go/models"
	"github.com/velure-shop/velure-backend-go/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout is swapped for a real Stripe-backed client in production wiring.
var Checkout utils.CheckoutClient = utils.NewCheckoutClient()

// CreateCheckoutSession opens a hosted payment session for a pending order
// and records the session id for webhook correlation.
func CreateCheckoutSession(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var order models.Order
	err = database.DB.Collection("orders").FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Order is not awaiting payment"})
	}

	session, err := Checkout.CreateSession(ctx, order.OrderNumber, utils.BuildCheckoutItems(&order))
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to create checkout session"})
	}

	_, err = database.DB.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"stripeSessionId": session.ID, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
	}

	return c.JSON(http.StatusOK, session)
}

// PaymentWebhook receives the gateway's outcome for a checkout session and
// settles the matching order.
func PaymentWebhook(c echo.Context) error {
	var event struct {
		SessionID string `json:"sessionId" validate:"required"`
		Status    string `json:"status" validate:"required,oneof=paid failed"`
	}
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&event); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentStatus(event.Status),
		"updatedAt":     time.Now(),
	}}
	if event.Status == "failed" {
		update["$set"].(bson.M)["orderStatus"] = models.OrderStatusCancelled
	}

	result, err := database.DB.Collection("orders").UpdateOne(ctx, bson.M{"stripeSessionId": event.SessionID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Payment status recorded"})
}
