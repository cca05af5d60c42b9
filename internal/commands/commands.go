package commands

import (
	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/commands/initialize"
	"github.com/qshing/dbinit/internal/commands/settings"
	"github.com/qshing/dbinit/internal/commands/verify"
)

// set of commands
var (
	Init = cli.CommandDefinition{
		Command:     &initialize.Command{},
		Use:         "init",
		Aliases:     []string{"initialize", "bootstrap"},
		Description: "Bootstrap the feedback database",
		Help: `Bootstrap the feedback database

Creates the administrative user with a single read/write role grant
on the database, then creates the empty feedback collection.

This is meant to run once against a pristine server: running it against
an initialized database fails without changing anything already created.`,
	}

	Verify = cli.CommandDefinition{
		Command:     &verify.Command{},
		Use:         "verify",
		Aliases:     []string{"check"},
		Description: "Verify the feedback database was bootstrapped",
		Help: `Verify the feedback database was bootstrapped

Reads back the administrative user and the collections of the database
and reports whether they match the configured settings.
Nothing is modified.`,
	}

	Settings = cli.CommandDefinition{
		Command:     &settings.Command{},
		Use:         "settings",
		Description: "Display the resolved bootstrap settings",
		Help: `Display the resolved bootstrap settings

Settings resolve from flags, QSHING_-prefixed environment variables,
the CLI profile and defaults, in that order. Secrets are redacted.`,
	}
)
