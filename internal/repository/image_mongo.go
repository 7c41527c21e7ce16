package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertResult describes a stored document.
type InsertResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// DeleteResult describes a delete against the document store.
type DeleteResult struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// MongoImageRepository reads and writes the image document collection.
type MongoImageRepository struct {
	coll *mongo.Collection
	log  *zerolog.Logger
}

func NewMongoImageRepository(coll *mongo.Collection, log *zerolog.Logger) *MongoImageRepository {
	return &MongoImageRepository{coll: coll, log: log}
}

// ParseObjectID validates a 24-character hex document id.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return oid, nil
}

// ValidateKey rejects field names that would be read as operators.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "$") {
		return fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return nil
}

// toDocument replaces _id with its hex form under "id".
func toDocument(raw bson.M) model.Document {
	doc := model.Document(raw)
	if id, ok := raw["_id"]; ok {
		delete(doc, "_id")
		if oid, ok := id.(primitive.ObjectID); ok {
			doc["id"] = oid.Hex()
		} else {
			doc["id"] = id
		}
	}
	return doc
}

// FetchOne returns the document with the given id, or ErrNotFound.
func (r *MongoImageRepository) FetchOne(ctx context.Context, id string) (model.Document, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var raw bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		r.log.Error().Err(err).Str("image_id", id).Msg("failed to fetch image from mongo")
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}

	return toDocument(raw), nil
}

// FetchAll returns every document in the collection.
func (r *MongoImageRepository) FetchAll(ctx context.Context) ([]model.Document, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		r.log.Error().Err(err).Msg("failed to query images from mongo")
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}

	return docs, nil
}

// Insert stores a document holding exactly name, url, ai_labels and ai_text.
func (r *MongoImageRepository) Insert(ctx context.Context, in model.NewImage) (*InsertResult, error) {
	aiLabels, aiText := in.AILabels, in.AIText
	if aiLabels == nil {
		aiLabels = []string{}
	}
	if aiText == nil {
		aiText = []string{}
	}

	res, err := r.coll.InsertOne(ctx, bson.D{
		{Key: "name", Value: in.Name},
		{Key: "url", Value: in.URL},
		{Key: "ai_labels", Value: aiLabels},
		{Key: "ai_text", Value: aiText},
	})
	if err != nil {
		r.log.Error().Err(err).Str("name", in.Name).Msg("failed to insert image into mongo")
		return nil, fmt.Errorf("insert document: %w", err)
	}

	id := fmt.Sprint(res.InsertedID)
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}

	return &InsertResult{
		ID:      id,
		Message: "Mongo added id: " + id,
	}, nil
}

// DeleteAllByKeyExistence removes every document that has the field key,
// whatever its value.
func (r *MongoImageRepository) DeleteAllByKeyExistence(ctx context.Context, key string) (*DeleteResult, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{key: bson.M{"$exists": true}})
	if err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("failed to delete images from mongo")
		return nil, fmt.Errorf("delete documents with %q: %w", key, err)
	}

	return newDeleteResult(res.DeletedCount), nil
}

// DeleteOne removes the document with the given id. A missing id reports
// a count of zero.
func (r *MongoImageRepository) DeleteOne(ctx context.Context, id string) (*DeleteResult, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.log.Error().Err(err).Str("image_id", id).Msg("failed to delete image from mongo")
		return nil, fmt.Errorf("delete document %s: %w", id, err)
	}

	return newDeleteResult(res.DeletedCount), nil
}

func newDeleteResult(n int64) *DeleteResult {
	return &DeleteResult{
		Count:   n,
		Message: fmt.Sprintf("Mongo deleted %d documents", n),
	}
}
