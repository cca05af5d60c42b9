package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qshing/dbinit/internal/terminal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandFactory is a command factory
type CommandFactory struct {
	profile   *Profile
	ui        terminal.UI
	uiConfig  terminal.UIConfig
	outWriter io.Writer
	errWriter io.Writer
	outFile   *os.File
	errLogger *log.Logger
}

// NewCommandFactory creates a new command factory
func NewCommandFactory() (*CommandFactory, error) {
	profile, err := NewDefaultProfile()
	if err != nil {
		return nil, err
	}

	return &CommandFactory{
		profile:   profile,
		errLogger: log.New(os.Stderr, "UTC ERROR ", log.Ltime|log.Lmsgprefix),
	}, nil
}

// Build builds a Cobra command from the specified CommandDefinition
func (factory *CommandFactory) Build(command CommandDefinition) *cobra.Command {
	display := command.Display
	if display == "" {
		display = command.Use
	}

	cmd := cobra.Command{
		Use:     command.Use,
		Short:   command.Description,
		Long:    command.Help,
		Aliases: command.Aliases,
		Args:    cobra.NoArgs,
	}

	cmd.InheritedFlags().SortFlags = false // ensures command usage text displays global flags unsorted

	for _, subCommand := range command.SubCommands {
		cmd.AddCommand(factory.Build(subCommand))
	}

	if command.Command == nil {
		return &cmd
	}

	if flagger, ok := command.Command.(CommandFlagger); ok {
		fs := cmd.Flags()
		fs.SortFlags = false // ensures command flags are added unsorted
		flagger.Flags(fs)
	}

	cmd.PreRunE = func(c *cobra.Command, a []string) error {
		factory.ensureUI()

		if preparer, ok := command.Command.(CommandPreparer); ok {
			if err := preparer.Setup(commandContext(c), factory.profile, factory.ui); err != nil {
				return fmt.Errorf("%s setup failed: %w", display, errDisableUsage{err})
			}
		}
		return nil
	}

	cmd.RunE = func(c *cobra.Command, a []string) error {
		if closer, ok := command.Command.(CommandCloser); ok {
			defer func() {
				if err := closer.Close(context.Background()); err != nil {
					factory.ui.Print(terminal.NewWarningLog("%s teardown failed: %s", display, err))
				}
			}()
		}

		if err := command.Command.Handler(commandContext(c), factory.profile, factory.ui); err != nil {
			return fmt.Errorf("%s failed: %w", display, errDisableUsage{err})
		}
		return nil
	}

	return &cmd
}

// Close closes the command factory
func (factory *CommandFactory) Close() {
	if factory.outFile != nil {
		factory.outFile.Close()
	}
}

// Run executes the command and returns the process exit code
func (factory *CommandFactory) Run(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	executed, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	factory.ensureUI()
	factory.handleUsage(executed, err)

	logs := []terminal.Log{terminal.NewErrorLog(err)}

	var suggester CommandSuggester
	if errors.As(err, &suggester) {
		if suggestions := suggester.SuggestedCommands(); len(suggestions) > 0 {
			logs = append(logs, terminal.NewFollowupLog(terminal.MsgSuggestedCommands, suggestions...))
		}
	}

	if printErr := factory.ui.Print(logs...); printErr != nil {
		factory.errLogger.Print(err)
	}
	return 1
}

// SetGlobalFlags sets the global flags
func (factory *CommandFactory) SetGlobalFlags(fs *pflag.FlagSet) error {
	fs.SortFlags = false // ensures global flags are added unsorted

	// profile flags
	fs.StringVar(&factory.profile.Name, flagProfile, DefaultProfile, flagProfileUsage)

	// ui flags
	fs.StringVarP(&factory.uiConfig.OutputTarget, terminal.FlagOutputTarget, terminal.FlagOutputTargetShort, "", terminal.FlagOutputTargetUsage)
	fs.VarP(&factory.uiConfig.OutputFormat, terminal.FlagOutputFormat, terminal.FlagOutputFormatShort, terminal.FlagOutputFormatUsage)
	fs.BoolVar(&factory.uiConfig.DisableColors, terminal.FlagDisableColors, false, terminal.FlagDisableColorsUsage)

	// connection and bootstrap flags
	return factory.profile.BindFlags(fs)
}

// Setup initializes the command factory
func (factory *CommandFactory) Setup() {
	if err := factory.profile.Load(); err != nil {
		factory.errLogger.Fatal(err)
	}

	if filepath := factory.uiConfig.OutputTarget; filepath != "" {
		f, err := os.OpenFile(filepath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
		if err != nil {
			factory.errLogger.Fatal(fmt.Errorf("failed to open target file: %w", err))
		}
		factory.outFile = f
		factory.outWriter = f
	}
}

func (factory *CommandFactory) ensureUI() {
	if factory.outWriter == nil {
		factory.outWriter = os.Stdout
	}

	if factory.errWriter == nil {
		if factory.uiConfig.OutputTarget != "" {
			factory.errWriter = factory.outWriter
		} else {
			factory.errWriter = os.Stderr
		}
	}

	if factory.ui == nil {
		factory.ui = terminal.NewUI(factory.uiConfig, os.Stdin, factory.outWriter, factory.errWriter)
	}
}

func (factory *CommandFactory) handleUsage(cmd *cobra.Command, err error) {
	var disableUsage DisableUsage
	if cmd == nil || errors.As(err, &disableUsage) {
		return
	}
	fmt.Fprintln(factory.errWriter, cmd.UsageString())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
