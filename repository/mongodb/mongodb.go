/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suparena/modelrepo/repository"
)

// Repository implements repository.Repository[T] over a MongoDB collection.
// One client is bound at construction; the collection is named after the model
// type. String identifiers are parsed as 24-hex object ids; a parse failure
// resolves to absent (or false for Delete) without issuing a query.
type Repository[T any] struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// New connects to the deployment at connectionString and binds a repository
// for model type T over the collection named after T in databaseName.
func New[T any](connectionString, databaseName string) (*Repository[T], error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	db := client.Database(databaseName)
	return &Repository[T]{
		client:     client,
		db:         db,
		collection: db.Collection(repository.ModelName[T]()),
	}, nil
}

var _ repository.Repository[struct{}] = (*Repository[struct{}])(nil)

// Close disconnects the underlying client.
func (r *Repository[T]) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Collection exposes the bound collection name. Test support.
func (r *Repository[T]) Collection() string {
	return r.collection.Name()
}

// wrap converts a raw document into a model instance. Every read path funnels
// through here: the _id is rendered as its hex string before decoding so that
// models carry the identifier in their string ID field. A nil document wraps
// to absent.
func wrap[T any](raw bson.M) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	if oid, ok := raw["_id"].(primitive.ObjectID); ok {
		raw["_id"] = oid.Hex()
	}
	buf, err := bson.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	model := new(T)
	if err := bson.Unmarshal(buf, model); err != nil {
		return nil, fmt.Errorf("failed to decode document into %s: %w", repository.ModelName[T](), err)
	}
	return model, nil
}

// Create inserts the raw attribute map and wraps the inserted id plus the
// original fields into a model instance. A duplicate-key violation resolves
// to absence.
func (r *Repository[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	doc := bson.M{}
	for k, v := range data {
		doc[k] = v
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			slog.Error("mongodb create duplicate key", "collection", r.collection.Name(), "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", r.collection.Name(), err)
	}

	doc["_id"] = res.InsertedID
	return wrap[T](doc)
}

// GetByID fetches one document by object id.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		slog.Debug("mongodb get_by_id with malformed object id", "collection", r.collection.Name(), "id", id)
		return nil, nil
	}
	return r.findRaw(ctx, bson.M{"_id": oid})
}

// FindOne returns the first document matching the predicate in storage order.
func (r *Repository[T]) FindOne(ctx context.Context, query repository.Predicate) (*T, error) {
	return r.findRaw(ctx, toFilter(query))
}

// FindAll returns every matching document, applying skip then limit on the
// cursor when given.
func (r *Repository[T]) FindAll(ctx context.Context, query repository.Predicate, opts *repository.FindOptions) ([]*T, error) {
	findOpts := options.Find()
	if opts != nil && opts.Skip != nil {
		findOpts.SetSkip(*opts.Skip)
	}
	if opts != nil && opts.Limit != nil {
		findOpts.SetLimit(*opts.Limit)
	}

	cursor, err := r.collection.Find(ctx, toFilter(query), findOpts)
	if err != nil {
		slog.Error("mongodb find_all failed", "collection", r.collection.Name(), "err", err)
		return []*T{}, nil
	}
	defer cursor.Close(ctx)

	models := []*T{}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			slog.Error("mongodb find_all failed to decode document", "collection", r.collection.Name(), "err", err)
			return []*T{}, nil
		}
		model, err := wrap[T](raw)
		if err != nil {
			slog.Error("mongodb find_all failed to wrap document", "collection", r.collection.Name(), "err", err)
			return []*T{}, nil
		}
		models = append(models, model)
	}
	if err := cursor.Err(); err != nil {
		slog.Error("mongodb find_all cursor failed", "collection", r.collection.Name(), "err", err)
		return []*T{}, nil
	}
	return models, nil
}

// Update merges the given fields via $set. Success is determined by the
// matched count: zero matched resolves to absent, as does a duplicate-key
// violation.
func (r *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		slog.Debug("mongodb update with malformed object id", "collection", r.collection.Name(), "id", id)
		return nil, nil
	}

	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			slog.Error("mongodb update duplicate key", "collection", r.collection.Name(), "id", id, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.collection.Name(), err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.findRaw(ctx, bson.M{"_id": oid})
}

// Delete removes one document by object id. Success is determined by the
// deleted count.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		slog.Debug("mongodb delete with malformed object id", "collection", r.collection.Name(), "id", id)
		return false, nil
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", r.collection.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of documents matching the predicate.
func (r *Repository[T]) Count(ctx context.Context, query repository.Predicate) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, toFilter(query))
	if err != nil {
		slog.Error("mongodb count failed", "collection", r.collection.Name(), "err", err)
		return 0, nil
	}
	return n, nil
}

func (r *Repository[T]) findRaw(ctx context.Context, filter bson.M) (*T, error) {
	var raw bson.M
	err := r.collection.FindOne(ctx, filter).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		slog.Error("mongodb lookup failed", "collection", r.collection.Name(), "err", err)
		return nil, nil
	}
	return wrap[T](raw)
}

// toFilter translates a flat equality predicate into a bson filter, parsing
// any _id term into a native object id when possible.
func toFilter(query repository.Predicate) bson.M {
	filter := bson.M{}
	for k, v := range query {
		if k == "_id" || k == "id" {
			if s, ok := v.(string); ok {
				if oid, valid := parseObjectID(s); valid {
					filter["_id"] = oid
					continue
				}
			}
			filter["_id"] = v
			continue
		}
		filter[k] = v
	}
	return filter
}

func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
