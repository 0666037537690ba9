package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem snapshots the variant at the moment it was added; price drift is
// resolved again at order time.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	SKU       string             `bson:"sku" json:"sku"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
