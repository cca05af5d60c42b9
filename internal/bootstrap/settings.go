// Package bootstrap provisions and verifies the feedback database
// an environment needs before the application first starts
package bootstrap

import "github.com/qshing/dbinit/internal/mongodb"

// set of default settings
const (
	DefaultDatabase   = "phishing_feedback"
	DefaultUsername   = "admin"
	DefaultPassword   = "password"
	DefaultRole       = "readWrite"
	DefaultCollection = "user_feedback"
)

// Settings names the resources created during bootstrap
type Settings struct {
	Database   string
	Username   string
	Password   string
	Role       string
	Collection string
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Database:   DefaultDatabase,
		Username:   DefaultUsername,
		Password:   DefaultPassword,
		Role:       DefaultRole,
		Collection: DefaultCollection,
	}
}

// RoleGrant returns the single grant given to the bootstrap user
func (s Settings) RoleGrant() mongodb.RoleGrant {
	return mongodb.RoleGrant{Role: s.Role, DB: s.Database}
}

// User returns the bootstrap user
func (s Settings) User() mongodb.User {
	return mongodb.User{
		Name:     s.Username,
		Password: s.Password,
		Roles:    []mongodb.RoleGrant{s.RoleGrant()},
	}
}
