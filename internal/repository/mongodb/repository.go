package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const slotsCollection = "slots"

// slotDocument holds the whole inventory list under a single named key.
type slotDocument struct {
	Name  string             `bson:"_id"`
	Items []models.StockItem `bson:"items"`
}

// MongoDBRepository stores the inventory slot as one document in MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	slot     string
}

// NewMongoDBRepository connects to MongoDB and returns a slot named slot.
func NewMongoDBRepository(ctx context.Context, uri, dbName, slot string) (*MongoDBRepository, error) {
	if slot == "" {
		return nil, errors.New("slot name must not be empty")
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: slotsCollection,
		slot:     slot,
	}, nil
}

// Read loads the slot document. A missing document is an empty slot.
func (r *MongoDBRepository) Read(ctx context.Context) ([]models.StockItem, error) {
	var doc slotDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": r.slot}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.StockItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", r.slot, err)
	}
	if doc.Items == nil {
		doc.Items = []models.StockItem{}
	}
	return doc.Items, nil
}

// Write replaces the slot document in a single upsert.
func (r *MongoDBRepository) Write(ctx context.Context, items []models.StockItem) error {
	if items == nil {
		items = []models.StockItem{}
	}
	doc := slotDocument{Name: r.slot, Items: items}

	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": r.slot}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", r.slot, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
