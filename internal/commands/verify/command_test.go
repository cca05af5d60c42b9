package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qshing/dbinit/internal/cli"
	"github.com/qshing/dbinit/internal/mongodb"
	u "github.com/qshing/dbinit/internal/utils/test"
	"github.com/qshing/dbinit/internal/utils/test/assert"
	"github.com/qshing/dbinit/internal/utils/test/mock"

	"go.mongodb.org/mongo-driver/mongo"
)

func newTestProfile(t *testing.T) *cli.Profile {
	t.Helper()

	u.SetupHomeDir(t)
	u.ClearEnv(t, u.ProfileEnv...)

	profile, err := cli.NewDefaultProfile()
	assert.Nil(t, err)
	assert.Nil(t, profile.Load())
	return profile
}

func newTestClient(user mongodb.User, userFound bool, collections []string, documents int64) mock.MongoClient {
	client := mock.MongoClient{}
	client.ServerVersionFn = func(ctx context.Context) (string, error) {
		return "7.0.14", nil
	}
	client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
		return user, userFound, nil
	}
	client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
		if !userFound {
			return nil, nil
		}
		return []string{user.Name}, nil
	}
	client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
		return collections, nil
	}
	client.CountDocumentsFn = func(ctx context.Context, database, collection string) (int64, error) {
		return documents, nil
	}
	return client
}

var bootstrappedUser = mongodb.User{
	Name:  "admin",
	Roles: []mongodb.RoleGrant{{Role: "readWrite", DB: "phishing_feedback"}},
}

func TestVerifyHandler(t *testing.T) {
	t.Run("Should print every check as ok for a bootstrapped database", func(t *testing.T) {
		profile := newTestProfile(t)
		out, ui := mock.NewUI()

		cmd := &Command{newTestClient(bootstrappedUser, true, []string{"user_feedback"}, 0)}
		assert.Nil(t, cmd.Handler(context.Background(), profile, ui))

		assert.Equal(t, strings.Join([]string{
			"01:23:45 UTC INFO  Verified phishing_feedback on MongoDB 7.0.14",
			"  Check                                       Status",
			"  ------------------------------------------  ------",
			"  user exists                                 ok    ",
			"  user has exactly the configured role grant  ok    ",
			"  no other users exist                        ok    ",
			"  collection exists                           ok    ",
			"  collection is empty                         ok    ",
			"  no other collections exist                  ok    ",
			"",
		}, "\n"), out.String())
	})

	t.Run("Should fail and suggest running init for a pristine database", func(t *testing.T) {
		profile := newTestProfile(t)
		out, ui := mock.NewUI()

		cmd := &Command{newTestClient(mongodb.User{}, false, nil, 0)}
		err := cmd.Handler(context.Background(), profile, ui)
		assert.Equal(t, "2 of 6 checks failed on phishing_feedback: user exists, collection exists", err.Error())

		var suggester cli.CommandSuggester
		assert.True(t, errors.As(err, &suggester), "expected a command suggester")
		assert.Equal(t, []interface{}{"qshing-dbinit init"}, suggester.SuggestedCommands())

		assert.Equal(t, strings.Join([]string{
			"01:23:45 UTC INFO  Verified phishing_feedback on MongoDB 7.0.14",
			"  Check                                       Status ",
			"  ------------------------------------------  -------",
			"  user exists                                 failed ",
			"  user has exactly the configured role grant  skipped",
			"  no other users exist                        ok     ",
			"  collection exists                           failed ",
			"  collection is empty                         skipped",
			"  no other collections exist                  ok     ",
			"",
		}, "\n"), out.String())
	})

	for _, tc := range []struct {
		description string
		user        mongodb.User
		collections []string
		documents   int64
		expectedErr string
	}{
		{
			description: "Should fail when the user has other role grants",
			user: mongodb.User{
				Name: "admin",
				Roles: []mongodb.RoleGrant{
					{Role: "readWrite", DB: "phishing_feedback"},
					{Role: "dbAdmin", DB: "phishing_feedback"},
				},
			},
			collections: []string{"user_feedback"},
			expectedErr: "1 of 6 checks failed on phishing_feedback: user has exactly the configured role grant",
		},
		{
			description: "Should fail when the collection holds documents",
			user:        bootstrappedUser,
			collections: []string{"user_feedback"},
			documents:   3,
			expectedErr: "1 of 6 checks failed on phishing_feedback: collection is empty",
		},
		{
			description: "Should fail when other collections exist",
			user:        bootstrappedUser,
			collections: []string{"user_feedback", "reports"},
			expectedErr: "1 of 6 checks failed on phishing_feedback: no other collections exist",
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			profile := newTestProfile(t)
			_, ui := mock.NewUI()

			cmd := &Command{newTestClient(tc.user, true, tc.collections, tc.documents)}
			err := cmd.Handler(context.Background(), profile, ui)
			assert.Equal(t, tc.expectedErr, err.Error())

			var suggester cli.CommandSuggester
			assert.True(t, errors.As(err, &suggester), "expected a command suggester")
			assert.Equal(t, 0, len(suggester.SuggestedCommands()))
		})
	}

	t.Run("Should suggest checking the settings when the server is unreachable", func(t *testing.T) {
		profile := newTestProfile(t)
		out, ui := mock.NewUI()

		client := mock.MongoClient{}
		client.ServerVersionFn = func(ctx context.Context) (string, error) {
			return "", mongo.ErrClientDisconnected
		}

		cmd := &Command{client}
		err := cmd.Handler(context.Background(), profile, ui)
		assert.Equal(t, "server is unreachable: failed to get server version: client is disconnected", err.Error())
		assert.Equal(t, "", out.String())

		var suggester cli.CommandSuggester
		assert.True(t, errors.As(err, &suggester), "expected a command suggester")
		assert.Equal(t, []interface{}{"qshing-dbinit settings"}, suggester.SuggestedCommands())
	})

	t.Run("Should return an error when the state cannot be read", func(t *testing.T) {
		profile := newTestProfile(t)
		_, ui := mock.NewUI()

		client := newTestClient(bootstrappedUser, true, nil, 0)
		client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
			return nil, errors.New("something bad happened")
		}

		cmd := &Command{client}
		err := cmd.Handler(context.Background(), profile, ui)
		assert.Equal(t, "failed to list collections of phishing_feedback: something bad happened", err.Error())
	})
}

func TestVerifyClose(t *testing.T) {
	t.Run("Should do nothing without a client", func(t *testing.T) {
		assert.Nil(t, (&Command{}).Close(context.Background()))
	})

	t.Run("Should disconnect the client", func(t *testing.T) {
		var disconnected bool

		client := mock.MongoClient{}
		client.DisconnectFn = func(ctx context.Context) error {
			disconnected = true
			return nil
		}

		assert.Nil(t, (&Command{client}).Close(context.Background()))
		assert.True(t, disconnected, "expected the client to be disconnected")
	})
}
