package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryAdjustment is an audit record written whenever an admin sets a
// variant's inventory level.
type InventoryAdjustment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	SKU          string             `bson:"sku" json:"sku"`
	FromQuantity int                `bson:"fromQuantity" json:"fromQuantity"`
	ToQuantity   int                `bson:"toQuantity" json:"toQuantity"`
	Reason       string             `bson:"reason,omitempty" json:"reason,omitempty"`
	AdjustedBy   primitive.ObjectID `bson:"adjustedBy" json:"adjustedBy"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}
