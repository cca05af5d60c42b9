package settings

import (
	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/terminal"

	"github.com/AlecAivazis/survey/v2"
)

type inputs struct {
	Save   bool
	Prompt bool
}

// resolve asks for every setting and overrides the profile with the answers
// an empty password answer keeps the resolved password
func (i inputs) resolve(profile *cli.Profile, ui terminal.UI) error {
	uri := profile.MongoOptions().URI
	settings := profile.BootstrapSettings()

	if err := ui.AskOne(&survey.Input{Message: "MongoDB connection string", Default: uri}, &uri); err != nil {
		return err
	}

	for _, question := range []struct {
		message string
		answer  *string
	}{
		{"Database", &settings.Database},
		{"Username", &settings.Username},
	} {
		if err := ui.AskOne(&survey.Input{Message: question.message, Default: *question.answer}, question.answer); err != nil {
			return err
		}
	}

	var password string
	if err := ui.AskOne(&survey.Password{Message: "Password (leave blank to keep the current one)"}, &password); err != nil {
		return err
	}
	if password != "" {
		settings.Password = password
	}

	for _, question := range []struct {
		message string
		answer  *string
	}{
		{"Role", &settings.Role},
		{"Collection", &settings.Collection},
	} {
		if err := ui.AskOne(&survey.Input{Message: question.message, Default: *question.answer}, question.answer); err != nil {
			return err
		}
	}

	profile.SetMongoURI(uri)
	profile.SetBootstrapSettings(settings)
	return nil
}
