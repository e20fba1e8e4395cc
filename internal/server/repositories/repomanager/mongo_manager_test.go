package repomanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoManager(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("migrations create indexes", func(mt *mtest.T) {
		m := NewMongoRepositoryManager(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(mt, m.RunMigrations(ctx))
		require.NotNil(mt, m.Users())
		require.NotNil(mt, m.Files())
	})

	mt.Run("migration failure", func(mt *mtest.T) {
		m := NewMongoRepositoryManager(mt.Client, mt.DB.Name())
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "index build failed"}})

		require.Error(mt, m.RunMigrations(ctx))
	})
}
