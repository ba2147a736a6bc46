package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"orion_service/internal/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func userDoc(id primitive.ObjectID, wallet string, status models.ShipmentStatus) bson.D {
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "walletAddress", Value: wallet},
		{Key: "shipmentDetails", Value: bson.D{
			{Key: "odrerId", Value: "ORD-1"},
			{Key: "fullName", Value: "Ada Lovelace"},
		}},
	}
	if status != "" {
		doc = append(doc, bson.E{Key: "shipmentStatus", Value: status})
	}
	return doc
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id and default status", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.Create(context.Background(), models.User{WalletAddress: "0xabc"})
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.Equal(mt, "0xabc", user.WalletAddress)
		assert.Equal(mt, models.ShipmentNotShipped, user.ShipmentStatus)
	})

	mt.Run("create twice yields distinct ids", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		first, err := repo.Create(context.Background(), models.User{WalletAddress: "0xabc"})
		require.NoError(mt, err)
		second, err := repo.Create(context.Background(), models.User{WalletAddress: "0xabc"})
		require.NoError(mt, err)
		assert.NotEqual(mt, first.ID, second.ID)
	})

	mt.Run("create rejects unknown status", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)

		_, err := repo.Create(context.Background(), models.User{ShipmentStatus: "Lost"})
		assert.ErrorIs(mt, err, models.ErrInvalidShipmentStatus)
	})

	mt.Run("create surfaces write errors", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		_, err := repo.Create(context.Background(), models.User{WalletAddress: "0xabc"})
		require.Error(mt, err)
		var we mongo.WriteException
		assert.True(mt, errors.As(err, &we))
	})

	mt.Run("list decodes all records", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			userDoc(id1, "0xaaa", models.ShipmentShipped),
			userDoc(id2, "0xbbb", ""),
		))

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, id1, users[0].ID)
		assert.Equal(mt, models.ShipmentShipped, users[0].ShipmentStatus)
		assert.Equal(mt, "ORD-1", users[0].ShipmentDetails.OrderID)
		assert.Equal(mt, "0xbbb", users[1].WalletAddress)
		assert.Equal(mt, models.ShipmentNotShipped, users[1].ShipmentStatus)
	})

	mt.Run("list of empty collection is an empty slice", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("list surfaces command errors", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		_, err := repo.List(context.Background())
		assert.Error(mt, err)
	})

	mt.Run("update returns record after update", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: userDoc(id, "0xabc", models.ShipmentShipped)},
		})

		user, err := repo.UpdateShipmentStatus(context.Background(), "0xabc", models.ShipmentShipped)
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, models.ShipmentShipped, user.ShipmentStatus)
	})

	mt.Run("update miss returns nil without error", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		user, err := repo.UpdateShipmentStatus(context.Background(), "0xmissing", models.ShipmentShipped)
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("update rejects unknown status", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)

		_, err := repo.UpdateShipmentStatus(context.Background(), "0xabc", "Lost")
		assert.ErrorIs(mt, err, models.ErrInvalidShipmentStatus)
	})
}

func TestConnectRejectsBadURI(t *testing.T) {
	tests := []string{"", "http://not-mongo"}
	for _, uri := range tests {
		_, err := Connect(context.Background(), uri, "test")
		assert.ErrorIs(t, err, ErrStoreUnavailable, uri)
	}
}

func TestConnectDatabaseFromURI(t *testing.T) {
	c, err := Connect(context.Background(), "mongodb://localhost:27017/orion", "test")
	require.NoError(t, err)
	defer c.Close(context.Background())

	assert.Equal(t, "orion", c.Collection("users").Database().Name())

	c2, err := Connect(context.Background(), "mongodb://localhost:27017", "fallback")
	require.NoError(t, err)
	defer c2.Close(context.Background())

	assert.Equal(t, "fallback", c2.Collection("users").Database().Name())
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("no uri")
	u := Unavailable{Err: cause}

	_, err := u.Create(context.Background(), models.User{})
	assert.ErrorIs(t, err, cause)
	_, err = u.List(context.Background())
	assert.ErrorIs(t, err, cause)
	_, err = u.UpdateShipmentStatus(context.Background(), "0x", models.ShipmentShipped)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, u.Ping(context.Background()), cause)
	assert.NoError(t, u.Close(context.Background()))
}
