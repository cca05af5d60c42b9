package bootstrap

import (
	"context"
	"fmt"

	"github.com/qshing/dbinit/internal/mongodb"
)

// Result describes the resources created by an Initializer
type Result struct {
	Database   string
	User       mongodb.User
	Collection string
}

// Initializer provisions the bootstrap user and collection
//
// It runs against a pristine server exactly once: nothing is retried,
// validated or rolled back, and running it against an initialized
// database fails on the first resource that already exists
type Initializer struct {
	Client   mongodb.Client
	Settings Settings
}

// Run creates the user, then the collection, in the configured database
// The database itself is created by the server on the first write
func (i Initializer) Run(ctx context.Context) (Result, error) {
	s := i.Settings
	user := s.User()

	if err := i.Client.CreateUser(ctx, s.Database, user); err != nil {
		return Result{}, fmt.Errorf("failed to create user %s on %s: %w", s.Username, s.Database, err)
	}

	if err := i.Client.CreateCollection(ctx, s.Database, s.Collection); err != nil {
		return Result{}, fmt.Errorf("failed to create collection %s.%s: %w", s.Database, s.Collection, err)
	}

	user.Password = ""
	return Result{Database: s.Database, User: user, Collection: s.Collection}, nil
}
