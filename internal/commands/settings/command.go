package settings

import (
	"context"
	"net/url"

	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/terminal"

	"github.com/spf13/pflag"
)

const (
	flagSave      = "save"
	flagSaveUsage = "write the resolved settings to the CLI profile"

	flagPrompt      = "prompt"
	flagPromptUsage = "prompt for every setting, using the resolved value as the default"
)

const (
	headerSetting = "Setting"
	headerValue   = "Value"
)

// Command is the `settings` command
type Command struct {
	inputs inputs
}

// Flags is the command flags
func (cmd *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&cmd.inputs.Save, flagSave, false, flagSaveUsage)
	fs.BoolVar(&cmd.inputs.Prompt, flagPrompt, false, flagPromptUsage)
}

// Setup is the command setup
func (cmd *Command) Setup(ctx context.Context, profile *cli.Profile, ui terminal.UI) error {
	if !cmd.inputs.Prompt {
		return nil
	}
	return cmd.inputs.resolve(profile, ui)
}

// Handler is the command handler
func (cmd *Command) Handler(ctx context.Context, profile *cli.Profile, ui terminal.UI) error {
	opts := profile.MongoOptions()
	settings := profile.BootstrapSettings()

	logs := []terminal.Log{terminal.NewTableLog(
		"Resolved settings of profile "+profile.Name,
		[]string{headerSetting, headerValue},
		map[string]interface{}{headerSetting: "uri", headerValue: redactURI(opts.URI)},
		map[string]interface{}{headerSetting: "connect timeout", headerValue: opts.ConnectTimeout},
		map[string]interface{}{headerSetting: "database", headerValue: settings.Database},
		map[string]interface{}{headerSetting: "username", headerValue: settings.Username},
		map[string]interface{}{headerSetting: "password", headerValue: cli.Redact(settings.Password)},
		map[string]interface{}{headerSetting: "role", headerValue: settings.Role},
		map[string]interface{}{headerSetting: "collection", headerValue: settings.Collection},
	)}

	if cmd.inputs.Save {
		if err := profile.Save(); err != nil {
			return err
		}
		logs = append(logs, terminal.NewTextLog("Saved profile to %s", profile.Path()))
	}

	return ui.Print(logs...)
}

func redactURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return cli.Redact(uri)
	}
	return parsed.Redacted()
}
