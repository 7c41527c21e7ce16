package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/deppfellow/imagestore/internal/model"
)

const testNamespace = "Images.vite_demo_images"

func newMongoRepo(mt *mtest.T) *MongoImageRepository {
	log := zerolog.Nop()
	return NewMongoImageRepository(mt.Coll, &log)
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := ParseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = ParseObjectID("not-an-id")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("name"))
	assert.NoError(t, ValidateKey("meta.source"))
	assert.ErrorIs(t, ValidateKey(""), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey("$where"), ErrInvalidKey)
}

func TestMongoImageRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fetch one renames _id", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "cat.jpg"},
			{Key: "url", Value: "https://bucket/cat.jpg"},
			{Key: "ai_labels", Value: bson.A{"cat", "dog"}},
		}))

		doc, err := repo.FetchOne(context.Background(), oid.Hex())
		require.NoError(mt, err)

		assert.Equal(mt, oid.Hex(), doc.DocumentID())
		assert.NotContains(mt, doc, "_id")
		assert.Equal(mt, "cat.jpg", doc["name"])
		assert.Equal(mt, primitive.A{"cat", "dog"}, doc["ai_labels"])
	})

	mt.Run("fetch one missing is not found", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, err := repo.FetchOne(context.Background(), primitive.NewObjectID().Hex())
		require.ErrorIs(mt, err, ErrNotFound)
		assert.Equal(mt, NotFound, OutcomeOf(err))
	})

	mt.Run("fetch one rejects malformed id without a round trip", func(mt *mtest.T) {
		repo := newMongoRepo(mt)

		_, err := repo.FetchOne(context.Background(), "1234")
		require.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("fetch all", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "a.jpg"}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "b.jpg"}, {Key: "extra", Value: int32(1)}},
		))

		docs, err := repo.FetchAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, first.Hex(), docs[0].DocumentID())
		assert.Equal(mt, second.Hex(), docs[1].DocumentID())
		assert.Equal(mt, int32(1), docs[1]["extra"])
	})

	mt.Run("fetch all on empty collection", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		docs, err := repo.FetchAll(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := repo.Insert(context.Background(), model.NewImage{
			Name:     "cat.jpg",
			URL:      "https://bucket/cat.jpg",
			AILabels: []string{"cat"},
		})
		require.NoError(mt, err)

		_, err = primitive.ObjectIDFromHex(res.ID)
		require.NoError(mt, err)
		assert.Equal(mt, "Mongo added id: "+res.ID, res.Message)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("delete all by key existence", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))

		res, err := repo.DeleteAllByKeyExistence(context.Background(), "name")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), res.Count)
		assert.Equal(mt, "Mongo deleted 3 documents", res.Message)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		filter := started.Command.Lookup("deletes", "0", "q", "name", "$exists")
		assert.True(mt, filter.Boolean())
	})

	mt.Run("delete all rejects operator keys", func(mt *mtest.T) {
		repo := newMongoRepo(mt)

		_, err := repo.DeleteAllByKeyExistence(context.Background(), "$where")
		require.ErrorIs(mt, err, ErrInvalidKey)
	})

	mt.Run("delete all network failure is transient", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    6,
			Name:    "HostUnreachable",
			Message: "host unreachable",
			Labels:  []string{"NetworkError"},
		}))

		_, err := repo.DeleteAllByKeyExistence(context.Background(), "name")
		require.Error(mt, err)
		assert.Equal(mt, TransientError, OutcomeOf(err))
	})

	mt.Run("delete one missing reports zero", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		res, err := repo.DeleteOne(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), res.Count)
		assert.Equal(mt, "Mongo deleted 0 documents", res.Message)
	})

	mt.Run("delete one command error is fatal", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := repo.DeleteOne(context.Background(), primitive.NewObjectID().Hex())
		require.Error(mt, err)
		assert.Equal(mt, FatalError, OutcomeOf(err))
	})
}
