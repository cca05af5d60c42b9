package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/qshing/dbinit/internal/mongodb"
	"github.com/qshing/dbinit/internal/utils/test/assert"
	"github.com/qshing/dbinit/internal/utils/test/mock"
)

func newVerifiedClient() mock.MongoClient {
	client := mock.MongoClient{}
	client.ServerVersionFn = func(ctx context.Context) (string, error) {
		return "7.0.14", nil
	}
	client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
		return mongodb.User{
			Name:  name,
			Roles: []mongodb.RoleGrant{{Role: "readWrite", DB: database}},
		}, true, nil
	}
	client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
		return []string{"admin"}, nil
	}
	client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
		return []string{"user_feedback"}, nil
	}
	client.CountDocumentsFn = func(ctx context.Context, database, collection string) (int64, error) {
		return 0, nil
	}
	return client
}

func TestVerifierRun(t *testing.T) {
	t.Run("Should report no failures for a freshly bootstrapped database", func(t *testing.T) {
		report, err := Verifier{newVerifiedClient(), DefaultSettings()}.Run(context.Background())
		assert.Nil(t, err)

		assert.True(t, report.OK(), "report should be ok")
		assert.Equal(t, Report{
			ServerVersion: "7.0.14",
			UserFound:     true,
			Roles:         []mongodb.RoleGrant{{Role: "readWrite", DB: "phishing_feedback"}},
			Users:         []string{"admin"},
			Collections:   []string{"user_feedback"},
		}, report)
	})

	t.Run("Should ignore system collections", func(t *testing.T) {
		client := newVerifiedClient()
		client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
			return []string{"system.views", "user_feedback"}, nil
		}

		report, err := Verifier{client, DefaultSettings()}.Run(context.Background())
		assert.Nil(t, err)
		assert.True(t, report.OK(), "report should be ok")
		assert.Equal(t, []string{"user_feedback"}, report.Collections)
	})

	for _, tc := range []struct {
		description      string
		setup            func(client *mock.MongoClient)
		expectedFailures []string
	}{
		{
			description: "Should fail when the user is missing",
			setup: func(client *mock.MongoClient) {
				client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
					return mongodb.User{}, false, nil
				}
				client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
					return []string{}, nil
				}
			},
			expectedFailures: []string{CheckUserExists},
		},
		{
			description: "Should fail when other users exist",
			setup: func(client *mock.MongoClient) {
				client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
					return []string{"admin", "feedback_reader"}, nil
				}
			},
			expectedFailures: []string{CheckNoOtherUsers},
		},
		{
			description: "Should fail when only another user exists",
			setup: func(client *mock.MongoClient) {
				client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
					return mongodb.User{}, false, nil
				}
				client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
					return []string{"feedback_reader"}, nil
				}
			},
			expectedFailures: []string{CheckUserExists, CheckNoOtherUsers},
		},
		{
			description: "Should fail when the user has extra role grants",
			setup: func(client *mock.MongoClient) {
				client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
					return mongodb.User{Name: name, Roles: []mongodb.RoleGrant{
						{Role: "readWrite", DB: database},
						{Role: "dbAdmin", DB: database},
					}}, true, nil
				}
			},
			expectedFailures: []string{CheckUserRoles},
		},
		{
			description: "Should fail when the user grant is scoped to another database",
			setup: func(client *mock.MongoClient) {
				client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
					return mongodb.User{Name: name, Roles: []mongodb.RoleGrant{{Role: "readWrite", DB: "admin"}}}, true, nil
				}
			},
			expectedFailures: []string{CheckUserRoles},
		},
		{
			description: "Should fail when the collection is missing",
			setup: func(client *mock.MongoClient) {
				client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
					return nil, nil
				}
				client.CountDocumentsFn = func(ctx context.Context, database, collection string) (int64, error) {
					panic("documents should not be counted in a missing collection")
				}
			},
			expectedFailures: []string{CheckCollectionExists},
		},
		{
			description: "Should fail when the collection has documents",
			setup: func(client *mock.MongoClient) {
				client.CountDocumentsFn = func(ctx context.Context, database, collection string) (int64, error) {
					return 3, nil
				}
			},
			expectedFailures: []string{CheckCollectionEmpty},
		},
		{
			description: "Should fail when other collections exist",
			setup: func(client *mock.MongoClient) {
				client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
					return []string{"phishing_urls", "user_feedback", "cache"}, nil
				}
			},
			expectedFailures: []string{CheckNoOtherCollections},
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			client := newVerifiedClient()
			tc.setup(&client)

			report, err := Verifier{client, DefaultSettings()}.Run(context.Background())
			assert.Nil(t, err)

			assert.False(t, report.OK(), "report should not be ok")
			assert.Equal(t, tc.expectedFailures, report.Failures)
		})
	}

	t.Run("Should return an error", func(t *testing.T) {
		for _, tc := range []struct {
			description string
			setup       func(client *mock.MongoClient)
			expectedErr string
		}{
			{
				description: "When the server cannot be reached",
				setup: func(client *mock.MongoClient) {
					client.ServerVersionFn = func(ctx context.Context) (string, error) {
						return "", errors.New("server selection timeout")
					}
				},
				expectedErr: "failed to get server version: server selection timeout",
			},
			{
				description: "When looking up the user fails",
				setup: func(client *mock.MongoClient) {
					client.FindUserFn = func(ctx context.Context, database, name string) (mongodb.User, bool, error) {
						return mongodb.User{}, false, errors.New("something bad happened")
					}
				},
				expectedErr: "failed to find user admin on phishing_feedback: something bad happened",
			},
			{
				description: "When listing the users fails",
				setup: func(client *mock.MongoClient) {
					client.UserNamesFn = func(ctx context.Context, database string) ([]string, error) {
						return nil, errors.New("something bad happened")
					}
				},
				expectedErr: "failed to list users of phishing_feedback: something bad happened",
			},
			{
				description: "When listing the collections fails",
				setup: func(client *mock.MongoClient) {
					client.CollectionNamesFn = func(ctx context.Context, database string) ([]string, error) {
						return nil, errors.New("something bad happened")
					}
				},
				expectedErr: "failed to list collections of phishing_feedback: something bad happened",
			},
			{
				description: "When counting the documents fails",
				setup: func(client *mock.MongoClient) {
					client.CountDocumentsFn = func(ctx context.Context, database, collection string) (int64, error) {
						return 0, errors.New("something bad happened")
					}
				},
				expectedErr: "failed to count documents in phishing_feedback.user_feedback: something bad happened",
			},
		} {
			t.Run(tc.description, func(t *testing.T) {
				client := newVerifiedClient()
				tc.setup(&client)

				_, err := Verifier{client, DefaultSettings()}.Run(context.Background())
				assert.Equal(t, tc.expectedErr, err.Error())
			})
		}
	})
}
