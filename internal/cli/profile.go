package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qshing/dbinit/internal/bootstrap"
	"github.com/qshing/dbinit/internal/mongodb"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultProfile is the default profile name
	DefaultProfile = "default"

	envPrefix   = "qshing"
	profileDir  = ".config/qshing-dbinit"
	profileType = "yaml"

	defaultConnectTimeout = 10 * time.Second
)

// set of supported CLI profile keys
const (
	keyMongoURI       = "mongodb_uri"
	keyMongoName      = "mongodb_name"
	keyAdminUser      = "admin_user"
	keyAdminPassword  = "admin_password"
	keyAdminRole      = "admin_role"
	keyCollection     = "collection"
	keyConnectTimeout = "connect_timeout"
)

// set of connection and bootstrap flags
const (
	flagURI      = "uri"
	flagURIUsage = "the MongoDB connection string"

	flagDatabase      = "database"
	flagDatabaseUsage = "the database to bootstrap"

	flagUsername      = "username"
	flagUsernameUsage = "the login name of the administrative user"

	flagPassword      = "password"
	flagPasswordUsage = "the password of the administrative user"

	flagRole      = "role"
	flagRoleUsage = "the role granted to the administrative user on the database"

	flagCollection      = "collection"
	flagCollectionUsage = "the collection to create"

	flagConnectTimeout      = "connect-timeout"
	flagConnectTimeoutUsage = "how long to wait for the server to become available"

	flagProfile      = "profile"
	flagProfileUsage = "the CLI profile to read settings from"
)

// Profile is the CLI profile
//
// Settings resolve in order of precedence from flags,
// QSHING_-prefixed environment variables, the profile file and defaults
type Profile struct {
	Name string

	dir string
	fs  afero.Fs
	v   *viper.Viper
}

// NewDefaultProfile creates a new default CLI profile
func NewDefaultProfile() (*Profile, error) {
	return NewProfile(DefaultProfile)
}

// NewProfile creates a new CLI profile stored in the user's home directory
func NewProfile(name string) (*Profile, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to create CLI profile: %w", err)
	}
	return newProfile(name, filepath.Join(home, profileDir), afero.NewOsFs()), nil
}

func newProfile(name, dir string, fs afero.Fs) *Profile {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault(keyMongoURI, mongodb.DefaultURI)
	v.SetDefault(keyMongoName, bootstrap.DefaultDatabase)
	v.SetDefault(keyAdminUser, bootstrap.DefaultUsername)
	v.SetDefault(keyAdminPassword, bootstrap.DefaultPassword)
	v.SetDefault(keyAdminRole, bootstrap.DefaultRole)
	v.SetDefault(keyCollection, bootstrap.DefaultCollection)
	v.SetDefault(keyConnectTimeout, defaultConnectTimeout)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return &Profile{Name: name, dir: dir, fs: fs, v: v}
}

// Path returns the profile file path
func (p *Profile) Path() string {
	return filepath.Join(p.dir, p.Name+"."+profileType)
}

// Load loads the CLI profile file, if one exists
func (p *Profile) Load() error {
	p.v.SetConfigFile(p.Path())
	p.v.SetConfigType(profileType)

	exists, err := afero.Exists(p.fs, p.Path())
	if err != nil {
		return fmt.Errorf("failed to load CLI profile: %w", err)
	}
	if !exists {
		return nil
	}

	if err := p.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load CLI profile: %w", err)
	}
	return nil
}

// Save writes the resolved settings to the CLI profile file
func (p *Profile) Save() error {
	if err := p.fs.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}

	out := viper.New()
	out.SetFs(p.fs)
	out.SetConfigPermissions(0600)
	for _, key := range []string{
		keyMongoURI,
		keyMongoName,
		keyAdminUser,
		keyAdminPassword,
		keyAdminRole,
		keyCollection,
	} {
		out.Set(key, p.v.GetString(key))
	}
	out.Set(keyConnectTimeout, p.ConnectTimeout().String())

	if err := out.WriteConfigAs(p.Path()); err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}
	return nil
}

// BindFlags registers the connection and bootstrap flags
// and binds them to the profile settings
func (p *Profile) BindFlags(fs *pflag.FlagSet) error {
	fs.String(flagURI, mongodb.DefaultURI, flagURIUsage)
	fs.String(flagDatabase, bootstrap.DefaultDatabase, flagDatabaseUsage)
	fs.String(flagUsername, bootstrap.DefaultUsername, flagUsernameUsage)
	fs.String(flagPassword, "", flagPasswordUsage)
	fs.String(flagRole, bootstrap.DefaultRole, flagRoleUsage)
	fs.String(flagCollection, bootstrap.DefaultCollection, flagCollectionUsage)
	fs.Duration(flagConnectTimeout, defaultConnectTimeout, flagConnectTimeoutUsage)

	var errs []string
	for key, flag := range map[string]string{
		keyMongoURI:       flagURI,
		keyMongoName:      flagDatabase,
		keyAdminUser:      flagUsername,
		keyAdminPassword:  flagPassword,
		keyAdminRole:      flagRole,
		keyCollection:     flagCollection,
		keyConnectTimeout: flagConnectTimeout,
	} {
		if err := p.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("failed to bind flags: " + strings.Join(errs, ", "))
	}
	return nil
}

// MongoOptions returns the options used to connect to the server
func (p *Profile) MongoOptions() mongodb.Options {
	return mongodb.Options{
		URI:            p.v.GetString(keyMongoURI),
		ConnectTimeout: p.ConnectTimeout(),
	}
}

// ConnectTimeout returns how long to wait for the server
func (p *Profile) ConnectTimeout() time.Duration {
	return p.v.GetDuration(keyConnectTimeout)
}

// BootstrapSettings returns the names of the resources to bootstrap
func (p *Profile) BootstrapSettings() bootstrap.Settings {
	return bootstrap.Settings{
		Database:   p.v.GetString(keyMongoName),
		Username:   p.v.GetString(keyAdminUser),
		Password:   p.v.GetString(keyAdminPassword),
		Role:       p.v.GetString(keyAdminRole),
		Collection: p.v.GetString(keyCollection),
	}
}

// SetMongoURI overrides the MongoDB connection string
func (p *Profile) SetMongoURI(uri string) {
	p.v.Set(keyMongoURI, uri)
}

// SetBootstrapSettings overrides the names of the resources to bootstrap
func (p *Profile) SetBootstrapSettings(settings bootstrap.Settings) {
	p.v.Set(keyMongoName, settings.Database)
	p.v.Set(keyAdminUser, settings.Username)
	p.v.Set(keyAdminPassword, settings.Password)
	p.v.Set(keyAdminRole, settings.Role)
	p.v.Set(keyCollection, settings.Collection)
}

// Redact replaces every character of a secret with '*'
func Redact(secret string) string {
	return strings.Repeat("*", len(secret))
}
