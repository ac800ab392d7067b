package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the URI nor the caller names a database.
const DefaultDatabase = "test"

// Client owns the process-wide MongoDB connection pool.
type Client struct {
	*mongo.Client
	database string
}

// NewClient connects to uri and verifies the deployment is reachable.
// A database named in the URI path takes precedence over database.
func NewClient(ctx context.Context, uri, database string) (*Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		// Nested documents in schemaless fields decode as maps, not ordered pairs.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	if cs, err := connstring.Parse(uri); err == nil && cs.Database != "" {
		database = cs.Database
	}
	if database == "" {
		database = DefaultDatabase
	}
	return &Client{Client: client, database: database}, nil
}

// Collection returns a handle on name in the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database(c.database).Collection(name)
}

// Ping reports whether the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
