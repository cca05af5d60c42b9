package mock

import (
	"context"

	"github.com/qshing/dbinit/internal/mongodb"
)

// MongoClient is a mocked MongoDB client
type MongoClient struct {
	mongodb.Client
	PingFn             func(ctx context.Context) error
	ServerVersionFn    func(ctx context.Context) (string, error)
	CreateUserFn       func(ctx context.Context, database string, user mongodb.User) error
	FindUserFn         func(ctx context.Context, database, name string) (mongodb.User, bool, error)
	UserNamesFn        func(ctx context.Context, database string) ([]string, error)
	CreateCollectionFn func(ctx context.Context, database, name string) error
	CollectionNamesFn  func(ctx context.Context, database string) ([]string, error)
	CountDocumentsFn   func(ctx context.Context, database, collection string) (int64, error)
	DisconnectFn       func(ctx context.Context) error
}

// Ping calls the mocked Ping implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) Ping(ctx context.Context) error {
	if mc.PingFn != nil {
		return mc.PingFn(ctx)
	}
	return mc.Client.Ping(ctx)
}

// ServerVersion calls the mocked ServerVersion implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) ServerVersion(ctx context.Context) (string, error) {
	if mc.ServerVersionFn != nil {
		return mc.ServerVersionFn(ctx)
	}
	return mc.Client.ServerVersion(ctx)
}

// CreateUser calls the mocked CreateUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CreateUser(ctx context.Context, database string, user mongodb.User) error {
	if mc.CreateUserFn != nil {
		return mc.CreateUserFn(ctx, database, user)
	}
	return mc.Client.CreateUser(ctx, database, user)
}

// FindUser calls the mocked FindUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) FindUser(ctx context.Context, database, name string) (mongodb.User, bool, error) {
	if mc.FindUserFn != nil {
		return mc.FindUserFn(ctx, database, name)
	}
	return mc.Client.FindUser(ctx, database, name)
}

// UserNames calls the mocked UserNames implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) UserNames(ctx context.Context, database string) ([]string, error) {
	if mc.UserNamesFn != nil {
		return mc.UserNamesFn(ctx, database)
	}
	return mc.Client.UserNames(ctx, database)
}

// CreateCollection calls the mocked CreateCollection implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CreateCollection(ctx context.Context, database, name string) error {
	if mc.CreateCollectionFn != nil {
		return mc.CreateCollectionFn(ctx, database, name)
	}
	return mc.Client.CreateCollection(ctx, database, name)
}

// CollectionNames calls the mocked CollectionNames implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CollectionNames(ctx context.Context, database string) ([]string, error) {
	if mc.CollectionNamesFn != nil {
		return mc.CollectionNamesFn(ctx, database)
	}
	return mc.Client.CollectionNames(ctx, database)
}

// CountDocuments calls the mocked CountDocuments implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) CountDocuments(ctx context.Context, database, collection string) (int64, error) {
	if mc.CountDocumentsFn != nil {
		return mc.CountDocumentsFn(ctx, database, collection)
	}
	return mc.Client.CountDocuments(ctx, database, collection)
}

// Disconnect calls the mocked Disconnect implementation if provided,
// otherwise the call falls back to the underlying mongodb.Client implementation.
// NOTE: this may panic if the underlying mongodb.Client is left undefined
func (mc MongoClient) Disconnect(ctx context.Context) error {
	if mc.DisconnectFn != nil {
		return mc.DisconnectFn(ctx)
	}
	return mc.Client.Disconnect(ctx)
}
