package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection      = "users"
	PropertiesCollection = "properties"

	connectTimeout = 10 * time.Second
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// Connect returns the process-wide MongoDB client, dialing it on first use.
// A failed first attempt is cached too; callers are expected to exit.
func Connect(uri string) (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			clientErr = fmt.Errorf("MongoDB connection failed: %w", err)
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(context.Background())
			clientErr = fmt.Errorf("MongoDB ping failed: %w", err)
			return
		}

		log.Println("✅ Connected to MongoDB")
		client = c
	})
	return client, clientErr
}

// ConnectMongoDB connects and returns the named database with its indexes in place.
func ConnectMongoDB(uri, dbName string) (*mongo.Database, error) {
	c, err := Connect(uri)
	if err != nil {
		return nil, err
	}
	database := c.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := EnsureIndexes(ctx, database); err != nil {
		return nil, err
	}
	return database, nil
}

// EnsureIndexes creates the unique email index and the listing sort/filter indexes.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = database.Collection(PropertiesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "listing_type", Value: 1}, {Key: "property_type", Value: 1}, {Key: "price", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create properties indexes: %w", err)
	}
	return nil
}

// Disconnect closes the shared client if one was established.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Ping checks that the shared client can still reach the primary.
func Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("mongo client not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}
