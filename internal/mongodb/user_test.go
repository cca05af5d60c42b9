package mongodb

import (
	"testing"

	"github.com/qshing/dbinit/internal/utils/test/assert"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCreateUserCommand(t *testing.T) {
	t.Run("Should build the createUser command with a single role grant", func(t *testing.T) {
		cmd := createUserCommand(User{
			Name:     "admin",
			Password: "password",
			Roles:    []RoleGrant{{Role: "readWrite", DB: "phishing_feedback"}},
		})

		raw, err := bson.Marshal(cmd)
		assert.Nil(t, err)

		var doc bson.M
		assert.Nil(t, bson.Unmarshal(raw, &doc))

		assert.Equal(t, "createUser", cmd[0].Key)
		assert.Equal(t, "admin", doc["createUser"])
		assert.Equal(t, "password", doc["pwd"])
		assert.Equal(t, bson.A{bson.M{"role": "readWrite", "db": "phishing_feedback"}}, doc["roles"])
	})

	t.Run("Should send an empty roles array when the user has no grants", func(t *testing.T) {
		cmd := createUserCommand(User{Name: "admin", Password: "password"})

		raw, err := bson.Marshal(cmd)
		assert.Nil(t, err)

		var doc bson.M
		assert.Nil(t, bson.Unmarshal(raw, &doc))
		assert.Equal(t, bson.A{}, doc["roles"])
	})
}

func TestUsersInfoCommand(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "usersInfo", Value: bson.D{
			{Key: "user", Value: "admin"},
			{Key: "db", Value: "phishing_feedback"},
		}},
	}, usersInfoCommand("phishing_feedback", "admin"))
}
