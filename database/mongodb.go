package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

var logger = hclog.New(&hclog.LoggerOptions{Name: "database"})

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return err
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	DB = client.Database("velure")
	logger.Info("Connected to MongoDB")
	return nil
}

// EnsureIndexes creates the uniqueness constraints the optimistic write paths
// rely on: one product per handle, one product per variant SKU, one user per
// email. Duplicate-key failures on insert/update are mapped to conflicts by
// the handlers.
func EnsureIndexes(ctx context.Context) error {
	products := DB.Collection("products")
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "variants.sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "descriptionHtml", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating product indexes: %w", err)
	}

	_, err = DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}

	logger.Debug("Indexes ensured")
	return nil
}
