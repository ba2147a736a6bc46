package store

import (
	"context"

	"orion_service/internal/models"
)

// Unavailable stands in for the repository when the mongo client could not be
// built at startup. The server keeps listening and every call reports Err.
type Unavailable struct {
	Err error
}

func (u Unavailable) Create(context.Context, models.User) (*models.User, error) {
	return nil, u.Err
}

func (u Unavailable) List(context.Context) ([]models.User, error) {
	return nil, u.Err
}

func (u Unavailable) UpdateShipmentStatus(context.Context, string, models.ShipmentStatus) (*models.User, error) {
	return nil, u.Err
}

func (u Unavailable) Ping(context.Context) error {
	return u.Err
}

func (u Unavailable) Close(context.Context) error {
	return nil
}
