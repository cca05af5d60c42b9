package initialize

import (
	"fmt"

	"github.com/qshing/dbinit/internal/cli"
)

type errAlreadyInitialized struct {
	cause error
}

func (err errAlreadyInitialized) Error() string {
	return fmt.Sprintf("database is already initialized: %s", err.cause)
}

func (err errAlreadyInitialized) Unwrap() error { return err.cause }

func (err errAlreadyInitialized) SuggestedCommands() []interface{} {
	return []interface{}{cli.Name + " verify"}
}

type errUnreachable struct {
	cause error
}

func (err errUnreachable) Error() string {
	return fmt.Sprintf("server is unreachable: %s", err.cause)
}

func (err errUnreachable) Unwrap() error { return err.cause }

func (err errUnreachable) SuggestedCommands() []interface{} {
	return []interface{}{cli.Name + " settings"}
}
