package initialize

import (
	"context"
	"fmt"
	"strings"

	"github.com/qshing/dbinit/internal/bootstrap"
	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/mongodb"
	"github.com/qshing/dbinit/internal/terminal"
)

const (
	headerResource = "Resource"
	headerName     = "Name"
	headerDatabase = "Database"
	headerRoles    = "Roles"

	resourceUser       = "user"
	resourceCollection = "collection"
)

// Command is the `init` command
type Command struct {
	client mongodb.Client
}

// Setup is the command setup
func (cmd *Command) Setup(ctx context.Context, profile *cli.Profile, ui terminal.UI) error {
	client, err := mongodb.Connect(ctx, profile.MongoOptions())
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	cmd.client = client
	return nil
}

// Handler is the command handler
func (cmd *Command) Handler(ctx context.Context, profile *cli.Profile, ui terminal.UI) error {
	result, err := bootstrap.Initializer{
		Client:   cmd.client,
		Settings: profile.BootstrapSettings(),
	}.Run(ctx)
	if err != nil {
		switch {
		case mongodb.IsDuplicateResource(err):
			return errAlreadyInitialized{err}
		case mongodb.IsConnectionFailure(err):
			return errUnreachable{err}
		}
		return err
	}

	grants := make([]string, 0, len(result.User.Roles))
	for _, grant := range result.User.Roles {
		grants = append(grants, fmt.Sprintf("%s@%s", grant.Role, grant.DB))
	}

	return ui.Print(terminal.NewTableLog(
		fmt.Sprintf("Successfully bootstrapped %s", result.Database),
		[]string{headerResource, headerName, headerDatabase, headerRoles},
		map[string]interface{}{
			headerResource: resourceUser,
			headerName:     result.User.Name,
			headerDatabase: result.Database,
			headerRoles:    strings.Join(grants, ", "),
		},
		map[string]interface{}{
			headerResource: resourceCollection,
			headerName:     result.Collection,
			headerDatabase: result.Database,
		},
	))
}

// Close disconnects the MongoDB client
func (cmd *Command) Close(ctx context.Context) error {
	if cmd.client == nil {
		return nil
	}
	return cmd.client.Disconnect(ctx)
}
