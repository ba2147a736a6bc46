package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// Client owns the process-wide mongo connection.
type Client struct {
	client   *mongo.Client
	database string
}

// Connect builds a client for uri. The driver dials lazily, so an unreachable
// server surfaces on the first operation rather than here.
func Connect(ctx context.Context, uri, defaultDatabase string) (*Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: mongodb connection string is empty", ErrStoreUnavailable)
	}
	cs, err := connstring.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: parse mongodb uri: %w", ErrStoreUnavailable, err)
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrStoreUnavailable, err)
	}

	database := cs.Database
	if database == "" {
		database = defaultDatabase
	}
	return &Client{client: client, database: database}, nil
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
