package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const (
	envNoSkipTest = "QSHING_NO_SKIP_TEST"
	envMongoImage = "QSHING_TEST_MONGODB_IMAGE"

	defaultMongoImage = "mongo:7.0.14"
)

// MustSkipf skips a test suite, but panics if QSHING_NO_SKIP_TEST is set
func MustSkipf(t *testing.T, format string, args ...interface{}) {
	t.Helper()
	if len(os.Getenv(envNoSkipTest)) > 0 {
		panic("test was skipped, but " + envNoSkipTest + " is set")
	}
	t.Skipf(format, args...)
}

// NewMongoServer starts a pristine MongoDB server for the duration of the test
// and returns its connection string
// The test is skipped in short mode or when no container runtime is available
func NewMongoServer(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		MustSkipf(t, "MongoDB server tests are disabled in short mode")
	}
	mustHaveHealthyProvider(t, dockerHealth)

	image := os.Getenv(envMongoImage)
	if image == "" {
		image = defaultMongoImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := tcMongo.Run(ctx, image)
	if err != nil {
		MustSkipf(t, "failed to start MongoDB server from %s: %s", image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate MongoDB server: %s", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get MongoDB connection string: %s", err)
	}
	return uri
}

func mustHaveHealthyProvider(t *testing.T, health func(ctx context.Context) error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := health(ctx); err != nil {
		MustSkipf(t, "container runtime is not available: %s", err)
	}
}

// dockerHealth reports an error when no Docker daemon can be reached
// the provider panics when no Docker host is configured at all
func dockerHealth(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return err
	}
	defer provider.Close()

	return provider.Health(ctx)
}
