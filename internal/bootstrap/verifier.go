package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/qshing/dbinit/internal/mongodb"

	"github.com/google/go-cmp/cmp"
)

// set of verification checks
const (
	CheckUserExists         = "user exists"
	CheckUserRoles          = "user has exactly the configured role grant"
	CheckNoOtherUsers       = "no other users exist"
	CheckCollectionExists   = "collection exists"
	CheckCollectionEmpty    = "collection is empty"
	CheckNoOtherCollections = "no other collections exist"
)

// Checks lists every verification check in the order they are evaluated
var Checks = []string{
	CheckUserExists,
	CheckUserRoles,
	CheckNoOtherUsers,
	CheckCollectionExists,
	CheckCollectionEmpty,
	CheckNoOtherCollections,
}

const systemCollectionsPrefix = "system."

// Report is the state of a bootstrapped database
type Report struct {
	ServerVersion string
	UserFound     bool
	Roles         []mongodb.RoleGrant
	Users         []string
	Collections   []string
	Documents     int64
	Failures      []string
}

// OK reports whether every check passed
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Failed reports whether the named check failed
func (r Report) Failed(check string) bool {
	for _, failure := range r.Failures {
		if failure == check {
			return true
		}
	}
	return false
}

// Verifier reads back the state an Initializer leaves behind
type Verifier struct {
	Client   mongodb.Client
	Settings Settings
}

// Run collects the Report; a non-nil error means the state could not be read,
// failed checks are recorded in Report.Failures instead
func (v Verifier) Run(ctx context.Context) (Report, error) {
	s := v.Settings

	var report Report

	version, err := v.Client.ServerVersion(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get server version: %w", err)
	}
	report.ServerVersion = version

	user, found, err := v.Client.FindUser(ctx, s.Database, s.Username)
	if err != nil {
		return Report{}, fmt.Errorf("failed to find user %s on %s: %w", s.Username, s.Database, err)
	}
	report.UserFound = found
	report.Roles = user.Roles

	users, err := v.Client.UserNames(ctx, s.Database)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list users of %s: %w", s.Database, err)
	}
	report.Users = users

	names, err := v.Client.CollectionNames(ctx, s.Database)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list collections of %s: %w", s.Database, err)
	}

	var collectionFound bool
	for _, name := range names {
		if strings.HasPrefix(name, systemCollectionsPrefix) {
			continue
		}
		report.Collections = append(report.Collections, name)
		if name == s.Collection {
			collectionFound = true
		}
	}

	if collectionFound {
		count, err := v.Client.CountDocuments(ctx, s.Database, s.Collection)
		if err != nil {
			return Report{}, fmt.Errorf("failed to count documents in %s.%s: %w", s.Database, s.Collection, err)
		}
		report.Documents = count
	}

	if !report.UserFound {
		report.Failures = append(report.Failures, CheckUserExists)
	} else if !cmp.Equal([]mongodb.RoleGrant{s.RoleGrant()}, report.Roles) {
		report.Failures = append(report.Failures, CheckUserRoles)
	}

	for _, name := range report.Users {
		if name != s.Username {
			report.Failures = append(report.Failures, CheckNoOtherUsers)
			break
		}
	}

	if !collectionFound {
		report.Failures = append(report.Failures, CheckCollectionExists)
	} else if report.Documents != 0 {
		report.Failures = append(report.Failures, CheckCollectionEmpty)
	}

	for _, name := range report.Collections {
		if name != s.Collection {
			report.Failures = append(report.Failures, CheckNoOtherCollections)
			break
		}
	}

	return report, nil
}
