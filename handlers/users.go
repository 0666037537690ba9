package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/velure-shop/velure-backend-go/database"
	"github.com/velure-shop/velure-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUserProfile retrieves the user's profile
func GetUserProfile(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var user models.User
	err := database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
	).Decode(&user)

	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, user)
}

// UpdateUserProfile updates the user's profile information
func UpdateUserProfile(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var updateData struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phoneNumber"`
	}

	if err := c.Bind(&updateData); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	update := bson.M{
		"$set": bson.M{
			"name":        updateData.Name,
			"phoneNumber": updateData.PhoneNumber,
			"updatedAt":   time.Now(),
		},
	}

	_, err := database.DB.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		update,
	)

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

// AddUserAddress adds an address to the user's address book.
func AddUserAddress(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid address data"})
	}

	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	if address.Type == "" {
		address.Type = "shipping"
	}

	// Only one default address at a time.
	if address.IsDefault {
		_, err := database.DB.Collection("users").UpdateOne(
			c.Request().Context(),
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"addresses.$[].isDefault": false}},
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update default status"})
		}
	}

	update := bson.M{
		"$push": bson.M{"addresses": address},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := database.DB.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		update,
	)
	if err != nil || result.ModifiedCount == 0 {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add address"})
	}

	return c.JSON(http.StatusOK, address)
}

func GetUserAddresses(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var user models.User
	err := database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
	).Decode(&user)

	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user.Addresses)
}

func UpdateUserAddress(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid address ID"})
	}

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if address.IsDefault {
		_, err = database.DB.Collection("users").UpdateOne(
			c.Request().Context(),
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"addresses.$[].isDefault": false}},
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update default status"})
		}
	}

	address.ID = addressID
	update := bson.M{
		"$set": bson.M{
			"addresses.$[elem]": address,
			"updatedAt":         time.Now(),
		},
	}

	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem._id": addressID},
		},
	}

	result, err := database.DB.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		update,
		options.Update().SetArrayFilters(arrayFilters),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update address"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Address not found"})
	}

	return c.JSON(http.StatusOK, address)
}

// DeleteUserAddress deletes an address
func DeleteUserAddress(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid address ID"})
	}

	update := bson.M{
		"$pull": bson.M{"addresses": bson.M{"_id": addressID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := database.DB.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		update,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete address"})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Address not found or already deleted"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Address deleted successfully"})
}
