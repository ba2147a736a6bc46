package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orion_service/internal/models"
)

// UserRepository persists purchaser records in a single collection.
// No unique index exists on walletAddress.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	user.ApplyDefaults()
	if !user.ShipmentStatus.Valid() {
		return nil, fmt.Errorf("insert user: %w: %q", models.ErrInvalidShipmentStatus, user.ShipmentStatus)
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range users {
		users[i].ApplyDefaults()
	}
	return users, nil
}

// UpdateShipmentStatus sets the status on the first record matching wallet
// and returns it as stored after the update. A miss yields (nil, nil).
func (r *UserRepository) UpdateShipmentStatus(ctx context.Context, wallet string, status models.ShipmentStatus) (*models.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("update shipment status: %w: %q", models.ErrInvalidShipmentStatus, status)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "walletAddress", Value: wallet}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "shipmentStatus", Value: status}}}},
		opts,
	)

	var user models.User
	if err := res.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update shipment status: %w", err)
	}
	user.ApplyDefaults()
	return &user, nil
}
