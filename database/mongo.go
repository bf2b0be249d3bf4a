package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aryb086/eyes-app/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and returns the client together with the application
// database handle. Callers pass the handle down explicitly; there is no
// package-global client.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("MongoDB connection failed: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("✅ Connected to MongoDB")

	return client, client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the indexes the application relies on: the unique
// folded-name index closing the create-city race, and the neighborhood id
// index for location lookups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	cities := db.Collection(string(config.DB_Collection.Cities))

	_, err := cities.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "neighborhoods.id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("index creation failed: %v", err)
	}

	return nil
}

func Disconnect(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("❌ MongoDB Disconnection Error: %v", err)
		return
	}
	log.Println("✅ MongoDB Disconnected")
}
