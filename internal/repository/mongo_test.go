package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	errs "goboard/internal/errors"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "goboard.kv"

	mt.Run("get existing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "go_human_skill"},
			{Key: "value", Value: "77"},
		}))

		v, err := NewMongoStore(mt.DB).Get(context.Background(), "go_human_skill")
		require.NoError(mt, err)
		assert.Equal(mt, "77", v)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongoStore(mt.DB).Get(context.Background(), "go_human_skill")
		assert.ErrorIs(mt, err, errs.ErrKeyNotFound)
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "go_ai_skill"}}}},
		))

		err := NewMongoStore(mt.DB).Set(context.Background(), "go_ai_skill", "12")
		assert.NoError(mt, err)
	})

	mt.Run("set failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
			Name:    "DuplicateKey",
		}))

		err := NewMongoStore(mt.DB).Set(context.Background(), "go_ai_skill", "12")
		assert.Error(mt, err)
	})

	mt.Run("remove", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := NewMongoStore(mt.DB).Remove(context.Background(), "go_ai_skill")
		assert.NoError(mt, err)
	})
}
