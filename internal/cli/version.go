package cli

var (
	// Name represents the CLI name; used for invoking the CLI commands
	Name = "qshing-dbinit"

	// Version represents the CLI version
	Version = "0.0.0" // value will be injected at build-time
)
