package verify

import (
	"fmt"
	"strings"

	"github.com/qshing/dbinit/internal/bootstrap"
	"github.com/qshing/dbinit/internal/cli"
)

type errVerificationFailed struct {
	database string
	report   bootstrap.Report
}

func (err errVerificationFailed) Error() string {
	return fmt.Sprintf(
		"%d of %d checks failed on %s: %s",
		len(err.report.Failures),
		len(bootstrap.Checks),
		err.database,
		strings.Join(err.report.Failures, ", "),
	)
}

func (err errVerificationFailed) SuggestedCommands() []interface{} {
	if err.report.Failed(bootstrap.CheckUserExists) && err.report.Failed(bootstrap.CheckCollectionExists) {
		return []interface{}{cli.Name + " init"}
	}
	return nil
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
