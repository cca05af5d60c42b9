package cli

import (
	"context"

	"github.com/qshing/dbinit/internal/terminal"

	"github.com/spf13/pflag"
)

// Command is an executable CLI command
// This interface maps 1:1 to Cobra's Command.RunE phase
//
// Optionally, a Command may implement any of the other interfaces found below.
// The order of operations is:
//  1. CommandFlagger.Flags: use this hook to register flags to parse
//  2. CommandPreparer.Setup: use this hook to setup the command (e.g. connect clients)
//  3. Command.Handler: this is the command hook
//  4. CommandCloser.Close: use this hook to release anything acquired during setup
//
// At any point should an error occur, command execution will terminate
// and the ensuing steps will not be run, except for CommandCloser.Close
// which always runs once setup has succeeded
type Command interface {
	Handler(ctx context.Context, profile *Profile, ui terminal.UI) error
}

// CommandFlagger is a hook for commands to register local flags to be parsed
type CommandFlagger interface {
	Flags(fs *pflag.FlagSet)
}

// CommandPreparer handles the command setup phase
// This interface maps 1:1 to Cobra's Command.PreRunE phase
type CommandPreparer interface {
	Setup(ctx context.Context, profile *Profile, ui terminal.UI) error
}

// CommandCloser handles the command teardown phase
type CommandCloser interface {
	Close(ctx context.Context) error
}

// CommandDefinition is a command's definition that the CommandFactory
// can build a *cobra.Command from
type CommandDefinition struct {
	// Command is the command's implementation
	// If present, this value is used to specify the cobra.Command execution phases
	Command Command

	// SubCommands are the command's sub commands
	// This array is iteratively added to this Cobra command via (cobra.Command).AddCommand
	SubCommands []CommandDefinition

	// Description is the short command description shown in the 'help' output
	// This value maps 1:1 to Cobra's `Short` property
	Description string

	// Help is the long message shown in the 'help <this-command>' output
	// This value maps 1:1 to Cobra's `Long` property
	Help string

	// Use defines how the command is used
	// This value maps 1:1 to Cobra's `Use` property
	Use string

	// Display controls how the command is described in output
	// If left blank, the command's Use value will be used instead
	Display string

	// Aliases is the list of supported aliases for the command
	// This value maps 1:1 to Cobra's `Aliases` property
	Aliases []string
}
