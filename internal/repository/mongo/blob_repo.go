package mongo

import (
	"alcyxob/coach-log/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const blobCollectionName = "blobs"

// blobDocument is the stored shape: the key doubles as _id.
type blobDocument struct {
	Key       string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoBlobRepository implements repository.BlobRepository
type mongoBlobRepository struct {
	collection *mongo.Collection
}

// NewMongoBlobRepository creates a new blob repository backed by MongoDB.
func NewMongoBlobRepository(db *mongo.Database) repository.BlobRepository {
	return &mongoBlobRepository{
		collection: db.Collection(blobCollectionName),
	}
}

// Get retrieves the document stored under key.
func (r *mongoBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	var doc blobDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find blob %q: %w", key, err)
	}
	return []byte(doc.Data), nil
}

// Put upserts the document under key.
func (r *mongoBlobRepository) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"data":      string(data),
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert blob %q: %w", key, err)
	}
	return nil
}
