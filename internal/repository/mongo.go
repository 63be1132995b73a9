package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "goboard/internal/errors"
)

const kvCollection = "kv"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore хранит по одному документу на ключ в коллекции kv
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(kvCollection)}
}

func (m *MongoStore) Get(ctx context.Context, key string) (string, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", errs.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Value, nil
}

func (m *MongoStore) Set(ctx context.Context, key, value string) error {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts)
	return err
}

func (m *MongoStore) Remove(ctx context.Context, key string) error {
	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
