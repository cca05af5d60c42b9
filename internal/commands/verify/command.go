package verify

import (
	"context"
	"fmt"

	"github.com/qshing/dbinit/internal/bootstrap"
	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/mongodb"
	"github.com/qshing/dbinit/internal/terminal"
)

const (
	headerCheck  = "Check"
	headerStatus = "Status"

	statusOK      = "ok"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

// Command is the `verify` command
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
	settings := profile.BootstrapSettings()

	report, err := bootstrap.Verifier{Client: cmd.client, Settings: settings}.Run(ctx)
	if err != nil {
		if mongodb.IsConnectionFailure(err) {
			return errUnreachable{err}
		}
		return err
	}

	rows := make([]map[string]interface{}, 0, len(bootstrap.Checks))
	for _, check := range bootstrap.Checks {
		rows = append(rows, map[string]interface{}{
			headerCheck:  check,
			headerStatus: checkStatus(report, check),
		})
	}

	if err := ui.Print(terminal.NewTableLog(
		fmt.Sprintf("Verified %s on MongoDB %s", settings.Database, report.ServerVersion),
		[]string{headerCheck, headerStatus},
		rows...,
	)); err != nil {
		return err
	}

	if !report.OK() {
		return errVerificationFailed{settings.Database, report}
	}
	return nil
}

// Close disconnects the MongoDB client
func (cmd *Command) Close(ctx context.Context) error {
	if cmd.client == nil {
		return nil
	}
	return cmd.client.Disconnect(ctx)
}

func checkStatus(report bootstrap.Report, check string) string {
	switch {
	case report.Failed(check):
		return statusFailed
	case check == bootstrap.CheckUserRoles && !report.UserFound,
		check == bootstrap.CheckCollectionEmpty && report.Failed(bootstrap.CheckCollectionExists):
		return statusSkipped
	}
	return statusOK
}
