package wardrobe

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raushankrgupta/wardrobe-ai-backend/models"
	"github.com/raushankrgupta/wardrobe-ai-backend/utils"
)

const (
	DatabaseName      = "ecocloset"
	UsersCollection   = "users"
	ItemsCollection   = "wardrobe_items"
	DetailsCollection = "wardrobe_item_details"
)

// MongoItemStore implements ItemStore on the shared MongoDB client.
// Per-user scoping is a user_id filter on the items collection; the detail
// collection is global and keyed by the composite id.
type MongoItemStore struct{}

func NewMongoItemStore() *MongoItemStore {
	return &MongoItemStore{}
}

func (m *MongoItemStore) CreateItem(ctx context.Context, item *models.Item) (string, error) {
	collection := utils.GetCollection(DatabaseName, ItemsCollection)
	res, err := collection.InsertOne(ctx, item)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	item.ID = oid
	return oid.Hex(), nil
}

func (m *MongoItemStore) UpdateItem(ctx context.Context, userID, itemID string, patch map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}
	collection := utils.GetCollection(DatabaseName, ItemsCollection)
	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": set},
	)
	return err
}

func (m *MongoItemStore) ListItems(ctx context.Context, userID string, recentFirst bool, limit int64) ([]models.Item, error) {
	collection := utils.GetCollection(DatabaseName, ItemsCollection)

	findOptions := options.Find()
	if recentFirst {
		findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *MongoItemStore) FindItemsByCategory(ctx context.Context, userID, category string, limit int64) ([]models.Item, error) {
	collection := utils.GetCollection(DatabaseName, ItemsCollection)

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx,
		bson.M{"user_id": userID, "clothing_category": category},
		findOptions,
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateDetails upserts on the composite id, so a retried ingestion cannot
// leave a duplicate detail record behind.
func (m *MongoItemStore) CreateDetails(ctx context.Context, details *models.ItemDetails) error {
	collection := utils.GetCollection(DatabaseName, DetailsCollection)
	_, err := collection.ReplaceOne(ctx,
		bson.M{"_id": details.ID},
		details,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *MongoItemStore) FindDetailsByID(ctx context.Context, detailID string) (*models.ItemDetails, error) {
	collection := utils.GetCollection(DatabaseName, DetailsCollection)
	var details models.ItemDetails
	err := collection.FindOne(ctx, bson.M{"_id": detailID}).Decode(&details)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &details, nil
}
