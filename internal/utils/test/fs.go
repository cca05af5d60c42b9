package testutils

import (
	"os"
	"testing"

	"github.com/mitchellh/go-homedir"
)

// SetupHomeDir points $HOME at a temporary directory for the duration of the test
// and returns the directory name
func SetupHomeDir(t *testing.T) string {
	t.Helper()

	home := t.TempDir()

	homedir.DisableCache = true
	t.Setenv("HOME", home)
	t.Cleanup(func() { homedir.DisableCache = false })

	return home
}

// ClearEnv unsets the named environment variables for the duration of the test
func ClearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// ProfileEnv lists the environment variables a CLI profile reads settings from
var ProfileEnv = []string{
	"QSHING_MONGODB_URI",
	"QSHING_MONGODB_NAME",
	"QSHING_ADMIN_USER",
	"QSHING_ADMIN_PASSWORD",
	"QSHING_ADMIN_ROLE",
	"QSHING_COLLECTION",
	"QSHING_CONNECT_TIMEOUT",
}
