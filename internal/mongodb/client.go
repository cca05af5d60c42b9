// Package mongodb is a narrow facade over the MongoDB driver
// exposing the administrative commands run during bootstrap
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	adminDatabase = "admin"

	// DefaultURI is the connection target used when none is configured
	DefaultURI = "mongodb://localhost:27017"
)

// Client is a MongoDB administrative client
type Client interface {
	Ping(ctx context.Context) error
	ServerVersion(ctx context.Context) (string, error)

	CreateUser(ctx context.Context, database string, user User) error
	FindUser(ctx context.Context, database, name string) (User, bool, error)
	UserNames(ctx context.Context, database string) ([]string, error)

	CreateCollection(ctx context.Context, database, name string) error
	CollectionNames(ctx context.Context, database string) ([]string, error)
	CountDocuments(ctx context.Context, database, collection string) (int64, error)

	Disconnect(ctx context.Context) error
}

// Options are the options used to connect a Client
type Options struct {
	URI            string
	ConnectTimeout time.Duration
}

// Connect creates a new Client for the configured server
// Connecting does not wait for the server; the first command does
func Connect(ctx context.Context, opts Options) (Client, error) {
	uri := opts.URI
	if uri == "" {
		uri = DefaultURI
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}

	mc, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}
	return &client{mc}, nil
}

// NewClient wraps an already connected driver client
func NewClient(mc *mongo.Client) Client {
	return &client{mc}
}

type client struct {
	mc *mongo.Client
}

func (c *client) Ping(ctx context.Context) error {
	return c.mc.Ping(ctx, readpref.Primary())
}

type buildInfo struct {
	Version string `bson:"version"`
}

func (c *client) ServerVersion(ctx context.Context) (string, error) {
	var info buildInfo
	if err := c.mc.Database(adminDatabase).RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info); err != nil {
		return "", err
	}
	return info.Version, nil
}

func (c *client) CreateCollection(ctx context.Context, database, name string) error {
	return c.mc.Database(database).CreateCollection(ctx, name)
}

func (c *client) CollectionNames(ctx context.Context, database string) ([]string, error) {
	return c.mc.Database(database).ListCollectionNames(ctx, bson.D{})
}

func (c *client) CountDocuments(ctx context.Context, database, collection string) (int64, error) {
	return c.mc.Database(database).Collection(collection).CountDocuments(ctx, bson.D{})
}

func (c *client) Disconnect(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}
